package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/app/repositories"
	"github.com/cid2105/virtual-greek/internal/db"
	"github.com/cid2105/virtual-greek/internal/pkg/profanity"
)

type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.calls++
	return fn(ctx, nil)
}

type fakeTopicStore struct {
	nextID       int64
	created      []*models.Topic
	audiences    map[int64][]int64
	topics       map[int64]*models.Topic
	inAudience   map[int64]map[int64]bool
	visibleCount int64
	visible      []*models.Topic
}

func newFakeTopicStore() *fakeTopicStore {
	return &fakeTopicStore{
		nextID:     1,
		audiences:  make(map[int64][]int64),
		topics:     make(map[int64]*models.Topic),
		inAudience: make(map[int64]map[int64]bool),
	}
}

func (f *fakeTopicStore) Create(ctx context.Context, q repositories.DBTX, topic *models.Topic) (int64, error) {
	id := f.nextID
	f.nextID++
	topic.ID = id
	f.created = append(f.created, topic)
	f.topics[id] = topic
	return id, nil
}

func (f *fakeTopicStore) AddAudience(ctx context.Context, q repositories.DBTX, topicID int64, profileIDs []int64) error {
	f.audiences[topicID] = append(f.audiences[topicID], profileIDs...)
	return nil
}

func (f *fakeTopicStore) IsInAudience(ctx context.Context, topicID, profileID int64) (bool, error) {
	return f.inAudience[topicID][profileID], nil
}

func (f *fakeTopicStore) GetByID(ctx context.Context, id int64) (*models.Topic, error) {
	return f.topics[id], nil
}

func (f *fakeTopicStore) CountVisibleTo(ctx context.Context, profileID int64) (int64, error) {
	return f.visibleCount, nil
}

func (f *fakeTopicStore) ListVisibleTo(ctx context.Context, profileID int64, offset uint64, limit int) ([]*models.Topic, int64, error) {
	return f.visible, f.visibleCount, nil
}

type fakeReplyStore struct {
	nextID  int64
	created []*models.Reply
	replies map[int64]*models.Reply
	praises map[int64]map[int64]bool
	tazes   map[int64]map[int64]bool
	deleted []int64
}

func newFakeReplyStore() *fakeReplyStore {
	return &fakeReplyStore{
		nextID:  1,
		replies: make(map[int64]*models.Reply),
		praises: make(map[int64]map[int64]bool),
		tazes:   make(map[int64]map[int64]bool),
	}
}

func (f *fakeReplyStore) Create(ctx context.Context, q repositories.DBTX, reply *models.Reply) (int64, error) {
	id := f.nextID
	f.nextID++
	reply.ID = id
	f.created = append(f.created, reply)
	f.replies[id] = reply
	return id, nil
}

func (f *fakeReplyStore) GetByID(ctx context.Context, id int64) (*models.Reply, error) {
	return f.replies[id], nil
}

func (f *fakeReplyStore) CountByTopic(ctx context.Context, topicID int64) (int64, error) {
	var n int64
	for _, r := range f.replies {
		if r.TopicID == topicID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReplyStore) ListByTopic(ctx context.Context, topicID int64, offset uint64, limit int) ([]*models.Reply, int64, error) {
	var out []*models.Reply
	for _, r := range f.replies {
		if r.TopicID == topicID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReplyStore) Delete(ctx context.Context, id int64) error {
	delete(f.replies, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeReplyStore) voteSet(m map[int64]map[int64]bool, replyID int64) map[int64]bool {
	if m[replyID] == nil {
		m[replyID] = make(map[int64]bool)
	}
	return m[replyID]
}

func (f *fakeReplyStore) AddPraise(ctx context.Context, replyID, profileID int64) error {
	f.voteSet(f.praises, replyID)[profileID] = true
	return nil
}

func (f *fakeReplyStore) RemovePraise(ctx context.Context, replyID, profileID int64) error {
	delete(f.voteSet(f.praises, replyID), profileID)
	return nil
}

func (f *fakeReplyStore) AddTaze(ctx context.Context, replyID, profileID int64) error {
	f.voteSet(f.tazes, replyID)[profileID] = true
	return nil
}

func (f *fakeReplyStore) RemoveTaze(ctx context.Context, replyID, profileID int64) error {
	delete(f.voteSet(f.tazes, replyID), profileID)
	return nil
}

type fakeChapterStore struct {
	chapter *models.Chapter
}

func (f *fakeChapterStore) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	return f.chapter, nil
}

type fakeOrganizationStore struct {
	organization *models.Organization
}

func (f *fakeOrganizationStore) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	return f.organization, nil
}

type fixedAudience struct {
	ids []int64
}

func (f *fixedAudience) Resolve(ctx context.Context, selector AudienceSelector, author *models.UserProfile) ([]int64, error) {
	return f.ids, nil
}

func discussionFixture() (*fakeTopicStore, *fakeReplyStore, *fakeTxRunner, DiscussionService) {
	topics := newFakeTopicStore()
	replies := newFakeReplyStore()
	tx := &fakeTxRunner{}
	chapterID := int64(10)
	svc := NewDiscussionService(
		topics,
		replies,
		&fakeChapterStore{chapter: &models.Chapter{ID: chapterID, OrganizationID: 1}},
		&fakeOrganizationStore{organization: &models.Organization{ID: 1, Type: models.OrgTypeFraternity}},
		&fixedAudience{ids: []int64{1, 2, 3}},
		profanity.NewFilter([]string{"hazing"}),
		tx,
		zerolog.Nop(),
	)
	return topics, replies, tx, svc
}

func discussionAuthor() *models.UserProfile {
	chapterID := int64(10)
	universityID := int64(20)
	name := "John Smith"
	return &models.UserProfile{ID: 1, DisplayName: &name, ChapterID: &chapterID, UniversityID: &universityID}
}

func TestCreateTopicStoresBodyAsFirstReply(t *testing.T) {
	topics, replies, tx, svc := discussionFixture()

	resp, err := svc.CreateTopic(context.Background(), discussionAuthor(), &dto.CreateTopicRequest{
		Title:   "Spring formal",
		Body:    "Who is coming?",
		Privacy: "Fraternity",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Title != "Spring formal" {
		t.Errorf("expected title in response, got %q", resp.Title)
	}
	if tx.calls != 1 {
		t.Errorf("expected one transaction, got %d", tx.calls)
	}
	if len(topics.created) != 1 {
		t.Fatalf("expected 1 topic created, got %d", len(topics.created))
	}
	if len(replies.created) != 1 {
		t.Fatalf("expected the body stored as first reply, got %d replies", len(replies.created))
	}
	if replies.created[0].Content != "Who is coming?" {
		t.Errorf("first reply content mismatch: %q", replies.created[0].Content)
	}
	if got := topics.audiences[topics.created[0].ID]; len(got) != 3 {
		t.Errorf("expected audience snapshot of 3, got %v", got)
	}
}

func TestCreateTopicValidation(t *testing.T) {
	_, _, _, svc := discussionFixture()
	author := discussionAuthor()

	if _, err := svc.CreateTopic(context.Background(), author, &dto.CreateTopicRequest{Title: "   ", Body: "b", Privacy: "Public"}); err == nil {
		t.Error("expected error for blank title")
	}
	if _, err := svc.CreateTopic(context.Background(), author, &dto.CreateTopicRequest{Title: "ok", Body: "no hazing talk", Privacy: "Public"}); err == nil {
		t.Error("expected error for blocked word in body")
	}
	if _, err := svc.CreateTopic(context.Background(), &models.UserProfile{ID: 5}, &dto.CreateTopicRequest{Title: "ok", Body: "b", Privacy: "Public"}); err == nil {
		t.Error("expected error for chapterless author")
	}
}

func TestReplyRequiresAudienceMembership(t *testing.T) {
	topics, _, _, svc := discussionFixture()
	topics.topics[1] = &models.Topic{ID: 1, AuthorID: 2, Title: "t"}
	topics.inAudience[1] = map[int64]bool{2: true}

	outsider := discussionAuthor() // ID 1, not in audience
	if _, err := svc.Reply(context.Background(), outsider, 1, &dto.CreateReplyRequest{Content: "hi"}); err == nil {
		t.Fatal("expected forbidden error for non-audience reply")
	}

	topics.inAudience[1][1] = true
	resp, err := svc.Reply(context.Background(), outsider, 1, &dto.CreateReplyRequest{Content: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "hi" {
		t.Errorf("expected reply content in response, got %q", resp.Content)
	}
}

func TestVotePraiseRemovesTaze(t *testing.T) {
	topics, replies, _, svc := discussionFixture()
	topics.inAudience[1] = map[int64]bool{1: true}
	replies.replies[5] = &models.Reply{ID: 5, TopicID: 1, AuthorID: 2}
	voter := discussionAuthor()

	if err := svc.Vote(context.Background(), voter, &dto.VoteRequest{ReplyID: 5, Type: "taze"}); err != nil {
		t.Fatalf("taze failed: %v", err)
	}
	if !replies.tazes[5][1] {
		t.Fatal("taze not recorded")
	}

	if err := svc.Vote(context.Background(), voter, &dto.VoteRequest{ReplyID: 5, Type: "praise"}); err != nil {
		t.Fatalf("praise failed: %v", err)
	}
	if !replies.praises[5][1] {
		t.Error("praise not recorded")
	}
	if replies.tazes[5][1] {
		t.Error("praise must clear the voter's taze")
	}

	// Repeating the praise is a no-op.
	if err := svc.Vote(context.Background(), voter, &dto.VoteRequest{ReplyID: 5, Type: "praise"}); err != nil {
		t.Fatalf("repeated praise failed: %v", err)
	}
	if !replies.praises[5][1] {
		t.Error("praise should remain set after repeat")
	}

	if err := svc.Vote(context.Background(), voter, &dto.VoteRequest{ReplyID: 5, Type: "unpraise"}); err != nil {
		t.Fatalf("unpraise failed: %v", err)
	}
	if replies.praises[5][1] {
		t.Error("unpraise should clear the praise")
	}
}

func TestVoteUnknownType(t *testing.T) {
	_, replies, _, svc := discussionFixture()
	replies.replies[5] = &models.Reply{ID: 5, TopicID: 1}

	if err := svc.Vote(context.Background(), discussionAuthor(), &dto.VoteRequest{ReplyID: 5, Type: "applaud"}); err == nil {
		t.Fatal("expected error for unknown vote type")
	}
}

func TestDeleteReplyAuthorization(t *testing.T) {
	_, replies, _, svc := discussionFixture()
	replies.replies[5] = &models.Reply{ID: 5, TopicID: 1, AuthorID: 2}

	// Non-author, non-officer.
	if err := svc.DeleteReply(context.Background(), discussionAuthor(), 5); err == nil {
		t.Fatal("expected forbidden error")
	}

	// Author may delete.
	author := &models.UserProfile{ID: 2}
	if err := svc.DeleteReply(context.Background(), author, 5); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if len(replies.deleted) != 1 || replies.deleted[0] != 5 {
		t.Errorf("expected reply 5 deleted, got %v", replies.deleted)
	}
}

func TestDeleteReplyByOfficer(t *testing.T) {
	topics := newFakeTopicStore()
	replies := newFakeReplyStore()
	officerID := int64(9)
	chapterID := int64(10)
	svc := NewDiscussionService(
		topics,
		replies,
		&fakeChapterStore{chapter: &models.Chapter{ID: chapterID, PresidentID: &officerID}},
		&fakeOrganizationStore{organization: &models.Organization{Type: models.OrgTypeFraternity}},
		&fixedAudience{},
		profanity.NewFilter(nil),
		&fakeTxRunner{},
		zerolog.Nop(),
	)
	replies.replies[5] = &models.Reply{ID: 5, TopicID: 1, AuthorID: 2}

	officer := &models.UserProfile{ID: officerID, ChapterID: &chapterID}
	if err := svc.DeleteReply(context.Background(), officer, 5); err != nil {
		t.Fatalf("officer delete failed: %v", err)
	}
}
