package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the query surface shared by pgxpool.Pool and pgx.Tx, letting
// repository methods run inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all repository instances
type Repositories struct {
	User         *UserRepository
	Profile      *ProfileRepository
	University   *UniversityRepository
	Organization *OrganizationRepository
	Chapter      *ChapterRepository
	Topic        *TopicRepository
	Reply        *ReplyRepository
	Announcement *AnnouncementRepository
	Conversation *ConversationRepository
	Album        *AlbumRepository
	Photo        *PhotoRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Profile:      NewProfileRepository(db),
		University:   NewUniversityRepository(db),
		Organization: NewOrganizationRepository(db),
		Chapter:      NewChapterRepository(db),
		Topic:        NewTopicRepository(db),
		Reply:        NewReplyRepository(db),
		Announcement: NewAnnouncementRepository(db),
		Conversation: NewConversationRepository(db),
		Album:        NewAlbumRepository(db),
		Photo:        NewPhotoRepository(db),
	}
}
