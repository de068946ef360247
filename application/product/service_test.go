package product

import (
	"context"
	"errors"
	"testing"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/notification"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/mocks"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingNotifier struct {
	sent []notification.Mail
	err  error
}

func (n *recordingNotifier) SendEmail(ctx context.Context, m notification.Mail) error {
	n.sent = append(n.sent, m)
	return n.err
}

func newService(t *testing.T, notifier Notifier) (*ApplicationService, *mocks.Store, int64) {
	t.Helper()
	ctx := context.Background()
	store := mocks.NewStore()

	require.NoError(t, store.Shops().Insert(ctx, &shop.Shop{URL: "acme-shop"}))
	require.NoError(t, store.Users().Insert(ctx, &user.User{ID: "kim", Email: "Kim@Example.com"}))
	require.NoError(t, store.Users().InsertSeller(ctx, "kim", "acme-shop"))
	p := &product.Product{ShopURL: "acme-shop", Name: "Claw hammer"}
	require.NoError(t, store.Products().Insert(ctx, p))

	svc := NewApplicationService(store.Products(), store.Comments(), store.Users(), notifier, mocks.NewMockUnitOfWork())
	return svc, store, p.ID
}

func TestInsertComment(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _, productID := newService(t, notifier)
	ctx := context.Background()

	comments, err := svc.InsertComment(ctx, CommentRequest{ProductID: productID, UserID: "lee", Content: "<b>good</b>"})
	require.NoError(t, err)
	require.Len(t, comments, 1)

	comments, err = svc.InsertComment(ctx, CommentRequest{ProductID: productID, UserID: "park", Content: "second"})
	require.NoError(t, err)
	require.Len(t, comments, 2, "the full list comes back, not just the new row")
	assert.Equal(t, "second", comments[1].Content)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "kim@example.com", notifier.sent[0].Recipient)
	assert.Contains(t, notifier.sent[0].Body, "&lt;b&gt;good&lt;/b&gt;")

	_, err = svc.InsertComment(ctx, CommentRequest{ProductID: productID, UserID: "kim", Content: "thanks"})
	require.NoError(t, err)
	assert.Len(t, notifier.sent, 2, "seller is not mailed about own comment")
}

func TestInsertCommentMissingProduct(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, store, productID := newService(t, notifier)

	comments, err := svc.InsertComment(context.Background(), CommentRequest{ProductID: 999, UserID: "lee", Content: "hi"})
	assert.Nil(t, comments)
	assert.ErrorIs(t, err, product.ErrInsertTargetNotFound)
	assert.Empty(t, notifier.sent)

	// 商品不存在时即使内容为空也报 insert target not found
	_, err = svc.InsertComment(context.Background(), CommentRequest{ProductID: 999, Content: "  "})
	assert.ErrorIs(t, err, product.ErrInsertTargetNotFound)
	assert.NotErrorIs(t, err, product.ErrEmptyComment)

	_, err = svc.InsertComment(context.Background(), CommentRequest{ProductID: productID, Content: "  "})
	assert.ErrorIs(t, err, product.ErrEmptyComment)
	stored, err := store.Comments().FindAllByProductID(context.Background(), productID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestInsertCommentMailFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer logger.ReplaceForTest(zap.New(core))()

	svc, _, productID := newService(t, &recordingNotifier{err: errors.New("smtp down")})

	comments, err := svc.InsertComment(context.Background(), CommentRequest{ProductID: productID, UserID: "lee", Content: "hi"})
	require.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, 1, logs.FilterMessage("Comment notice not sent").Len())
}

func TestInsertCommentWithoutNotifier(t *testing.T) {
	svc, _, productID := newService(t, nil)
	comments, err := svc.InsertComment(context.Background(), CommentRequest{ProductID: productID, UserID: "lee", Content: "hi"})
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestDeleteComment(t *testing.T) {
	svc, _, productID := newService(t, nil)
	ctx := context.Background()

	comments, err := svc.InsertComment(ctx, CommentRequest{ProductID: productID, UserID: "lee", Content: "one"})
	require.NoError(t, err)
	_, err = svc.InsertComment(ctx, CommentRequest{ProductID: productID, UserID: "lee", Content: "two"})
	require.NoError(t, err)

	remaining, err := svc.DeleteComment(ctx, CommentRequest{ID: comments[0].ID, ProductID: productID})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "two", remaining[0].Content)

	_, err = svc.DeleteComment(ctx, CommentRequest{ID: comments[0].ID, ProductID: productID})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	p, err := svc.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Len(t, p.Comments, 1)

	list, err := svc.GetComments(ctx, productID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
