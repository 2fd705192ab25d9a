package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/app/repositories"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
	"github.com/cid2105/virtual-greek/internal/pkg/profanity"
)

type pairKey struct {
	owner, partner int64
}

type fakeConversationStore struct {
	nextMessageID      int64
	nextConversationID int64
	messages           map[int64]*models.Message
	pairs              map[pairKey]int64
	conversations      map[int64]*models.Conversation
	links              map[int64][]int64
	touched            map[int64]bool
	createPairErrs     []error
	markedViewed       []int64
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{
		nextMessageID:      1,
		nextConversationID: 1,
		messages:           make(map[int64]*models.Message),
		pairs:              make(map[pairKey]int64),
		conversations:      make(map[int64]*models.Conversation),
		links:              make(map[int64][]int64),
		touched:            make(map[int64]bool),
	}
}

func (f *fakeConversationStore) CreateMessage(ctx context.Context, q repositories.DBTX, message *models.Message) (int64, error) {
	id := f.nextMessageID
	f.nextMessageID++
	message.ID = id
	f.messages[id] = message
	return id, nil
}

func (f *fakeConversationStore) FindPair(ctx context.Context, q repositories.DBTX, ownerID, partnerID int64) (*models.Conversation, error) {
	if id, ok := f.pairs[pairKey{ownerID, partnerID}]; ok {
		return f.conversations[id], nil
	}
	return nil, nil
}

func (f *fakeConversationStore) CreatePair(ctx context.Context, q repositories.DBTX, ownerID, partnerID int64) (int64, error) {
	if len(f.createPairErrs) > 0 {
		err := f.createPairErrs[0]
		f.createPairErrs = f.createPairErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	id := f.nextConversationID
	f.nextConversationID++
	f.pairs[pairKey{ownerID, partnerID}] = id
	f.conversations[id] = &models.Conversation{ID: id, OwnerProfileID: ownerID, PartnerProfileID: partnerID}
	return id, nil
}

func (f *fakeConversationStore) LinkMessage(ctx context.Context, q repositories.DBTX, conversationID, messageID int64) error {
	f.links[conversationID] = append(f.links[conversationID], messageID)
	return nil
}

func (f *fakeConversationStore) Touch(ctx context.Context, q repositories.DBTX, conversationID int64, viewed bool) error {
	f.touched[conversationID] = viewed
	if c, ok := f.conversations[conversationID]; ok {
		c.Viewed = viewed
	}
	return nil
}

func (f *fakeConversationStore) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	return f.conversations[id], nil
}

func (f *fakeConversationStore) MarkViewed(ctx context.Context, conversationID int64) error {
	f.markedViewed = append(f.markedViewed, conversationID)
	return nil
}

func (f *fakeConversationStore) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var n int64
	for _, c := range f.conversations {
		if c.OwnerProfileID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeConversationStore) ListByOwner(ctx context.Context, ownerID int64, offset uint64, limit int) ([]*models.Conversation, int64, error) {
	var out []*models.Conversation
	for _, c := range f.conversations {
		if c.OwnerProfileID == ownerID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeConversationStore) CountMessages(ctx context.Context, conversationID int64) (int64, error) {
	return int64(len(f.links[conversationID])), nil
}

func (f *fakeConversationStore) ListMessages(ctx context.Context, conversationID int64, offset uint64, limit int) ([]*models.Message, int64, error) {
	var out []*models.Message
	for _, id := range f.links[conversationID] {
		out = append(out, f.messages[id])
	}
	return out, int64(len(out)), nil
}

type fakeMailboxProfiles struct {
	profiles map[int64]*models.UserProfile
}

func (f *fakeMailboxProfiles) GetByID(ctx context.Context, id int64) (*models.UserProfile, error) {
	return f.profiles[id], nil
}

func mailboxFixture() (*fakeConversationStore, MailboxService) {
	store := newFakeConversationStore()
	john := "John Smith"
	jane := "Jane Doe"
	profiles := &fakeMailboxProfiles{profiles: map[int64]*models.UserProfile{
		1: {ID: 1, DisplayName: &john},
		2: {ID: 2, DisplayName: &jane},
	}}
	svc := NewMailboxService(store, profiles, profanity.NewFilter([]string{"hazing"}), &fakeTxRunner{}, zerolog.Nop())
	return store, svc
}

func TestSendMessageCreatesMirroredPair(t *testing.T) {
	store, svc := mailboxFixture()
	sender := &models.UserProfile{ID: 1}

	if err := svc.SendMessage(context.Background(), sender, &dto.SendMessageRequest{To: 2, Message: "hello"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outgoing, ok := store.pairs[pairKey{1, 2}]
	if !ok {
		t.Fatal("sender-side conversation missing")
	}
	incoming, ok := store.pairs[pairKey{2, 1}]
	if !ok {
		t.Fatal("recipient-side conversation missing")
	}

	if len(store.links[outgoing]) != 1 || len(store.links[incoming]) != 1 {
		t.Errorf("message not linked to both sides: %v / %v", store.links[outgoing], store.links[incoming])
	}
	if store.links[outgoing][0] != store.links[incoming][0] {
		t.Error("both sides must share the same message record")
	}
	if !store.touched[outgoing] {
		t.Error("sender's side must stay read")
	}
	if store.touched[incoming] {
		t.Error("recipient's side must become unread")
	}

	message := store.messages[store.links[outgoing][0]]
	if !message.AuthorViewed {
		t.Error("message should be created author-viewed")
	}
}

func TestSendMessageReusesExistingPair(t *testing.T) {
	store, svc := mailboxFixture()
	sender := &models.UserProfile{ID: 1}

	for i := 0; i < 2; i++ {
		if err := svc.SendMessage(context.Background(), sender, &dto.SendMessageRequest{To: 2, Message: "hello"}); err != nil {
			t.Fatalf("send %d failed: %v", i, err)
		}
	}

	if len(store.conversations) != 2 {
		t.Errorf("expected the same pair reused, got %d conversation records", len(store.conversations))
	}
	outgoing := store.pairs[pairKey{1, 2}]
	if len(store.links[outgoing]) != 2 {
		t.Errorf("expected 2 linked messages, got %d", len(store.links[outgoing]))
	}
}

func TestSendMessageRetriesOncePairConflict(t *testing.T) {
	store, svc := mailboxFixture()
	store.createPairErrs = []error{&pgconn.PgError{Code: "23505"}}

	if err := svc.SendMessage(context.Background(), &models.UserProfile{ID: 1}, &dto.SendMessageRequest{To: 2, Message: "hello"}); err != nil {
		t.Fatalf("expected retried delivery to succeed, got %v", err)
	}
	if _, ok := store.pairs[pairKey{1, 2}]; !ok {
		t.Error("conversation pair missing after retry")
	}
}

func TestSendMessageTerminalFailureIsMailboxError(t *testing.T) {
	store, svc := mailboxFixture()
	store.createPairErrs = []error{
		&pgconn.PgError{Code: "23505"},
		&pgconn.PgError{Code: "23505"},
	}

	err := svc.SendMessage(context.Background(), &models.UserProfile{ID: 1}, &dto.SendMessageRequest{To: 2, Message: "hello"})
	if err == nil {
		t.Fatal("expected terminal failure")
	}
	if !errors.Is(err, apperrors.ErrMailboxFailure) {
		t.Errorf("expected mailbox failure sentinel, got %v", err)
	}
}

func TestSendMessageValidation(t *testing.T) {
	_, svc := mailboxFixture()
	sender := &models.UserProfile{ID: 1}

	if err := svc.SendMessage(context.Background(), sender, &dto.SendMessageRequest{To: 2, Message: "  "}); err == nil {
		t.Error("expected error for empty message")
	}
	if err := svc.SendMessage(context.Background(), sender, &dto.SendMessageRequest{To: 1, Message: "hi"}); err == nil {
		t.Error("expected error for self-send")
	}
	if err := svc.SendMessage(context.Background(), sender, &dto.SendMessageRequest{To: 2, Message: "hazing tonight"}); err == nil {
		t.Error("expected error for blocked word")
	}
	if err := svc.SendMessage(context.Background(), sender, &dto.SendMessageRequest{To: 99, Message: "hi"}); err == nil {
		t.Error("expected error for unknown recipient")
	}
}

func TestMarkReadOwnSideOnly(t *testing.T) {
	store, svc := mailboxFixture()
	owner := &models.UserProfile{ID: 1}

	if err := svc.SendMessage(context.Background(), owner, &dto.SendMessageRequest{To: 2, Message: "hello"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	incoming := store.pairs[pairKey{2, 1}]

	// The sender cannot mark the recipient's record.
	if err := svc.MarkRead(context.Background(), owner, incoming); err == nil {
		t.Fatal("expected forbidden error for foreign conversation")
	}

	if err := svc.MarkRead(context.Background(), &models.UserProfile{ID: 2}, incoming); err != nil {
		t.Fatalf("recipient mark read failed: %v", err)
	}
	if len(store.markedViewed) != 1 || store.markedViewed[0] != incoming {
		t.Errorf("expected only the recipient's record marked, got %v", store.markedViewed)
	}
}

func TestGetConversationOwnership(t *testing.T) {
	store, svc := mailboxFixture()
	if err := svc.SendMessage(context.Background(), &models.UserProfile{ID: 1}, &dto.SendMessageRequest{To: 2, Message: "hello"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	outgoing := store.pairs[pairKey{1, 2}]

	resp, err := svc.GetConversation(context.Background(), &models.UserProfile{ID: 1}, outgoing, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Messages) != 1 {
		t.Errorf("expected 1 message, got %d", len(resp.Messages))
	}

	if _, err := svc.GetConversation(context.Background(), &models.UserProfile{ID: 2}, outgoing, 1); err == nil {
		t.Error("expected forbidden error reading the other side's record")
	}

	if _, err := svc.GetConversation(context.Background(), &models.UserProfile{ID: 1}, 999, 1); err == nil {
		t.Error("expected not-found error")
	}
}
