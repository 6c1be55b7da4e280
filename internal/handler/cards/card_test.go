package cards

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cardzen/internal/database"
	"cardzen/internal/middleware"
	"cardzen/internal/model"
	"cardzen/internal/service"
	"cardzen/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type structValidator struct{ v *validator.Validate }

func (s *structValidator) Validate(i interface{}) error { return s.v.Struct(i) }

func newCtx(e *echo.Echo, method, id, body string, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/cards/"+id, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetPath("/cards/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if userID != 0 {
		c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: userID})
	}
	return c, rec
}

func restore() {
	createCard = store.CreateCard
	listCards = store.ListCards
	getCardByID = store.GetCardByID
	updateCard = store.UpdateCard
	deleteCard = store.DeleteCard
}

func ownedBy(userID int64) func(context.Context, database.Querier, int64) (*model.Card, error) {
	return func(_ context.Context, _ database.Querier, id int64) (*model.Card, error) {
		return &model.Card{ID: id, UserID: userID, Name: "Holo", Description: "rare", Price: decimal.RequireFromString("9.99")}, nil
	}
}

func TestCreateCardHandler(t *testing.T) {
	e := echo.New()
	e.Validator = &structValidator{v: validator.New()}

	t.Run("bind error", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodPost, "", `{"price":"abc"`, 1)
		require.NoError(t, CreateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, body := range []string{
			`{"name":"Holo","description":"rare"}`,
			`{"name":"Holo","description":"rare","price":null}`,
			`{"name":"","description":"rare","price":1}`,
			`{"description":"rare","price":1}`,
		} {
			ctx, rec := newCtx(e, http.MethodPost, "", body, 1)
			require.NoError(t, CreateCardHandler(&database.FakeDB{})(ctx))
			require.Equal(t, http.StatusBadRequest, rec.Code, body)
			require.JSONEq(t, `{"message":"All fields are required"}`, rec.Body.String())
		}
	})

	t.Run("negative price", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodPost, "", `{"name":"Holo","description":"rare","price":-1}`, 1)
		require.NoError(t, CreateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "price must be non-negative")
	})

	t.Run("no claims", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodPost, "", `{"name":"Holo","description":"rare","price":1}`, 0)
		require.NoError(t, CreateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		createCard = func(context.Context, database.Querier, *model.Card) (*model.Card, error) {
			return nil, errors.New("db")
		}
		ctx, rec := newCtx(e, http.MethodPost, "", `{"name":"Holo","description":"rare","price":1}`, 1)
		require.NoError(t, CreateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
	})

	t.Run("zero price is accepted", func(t *testing.T) {
		t.Cleanup(restore)
		var got *model.Card
		createCard = func(_ context.Context, _ database.Querier, c *model.Card) (*model.Card, error) {
			got = c
			return c, nil
		}
		ctx, rec := newCtx(e, http.MethodPost, "", `{"name":"Free","description":"promo","price":0}`, 4)
		require.NoError(t, CreateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.JSONEq(t, `{"message":"Card created successfully"}`, rec.Body.String())
		require.Equal(t, int64(4), got.UserID)
		require.True(t, got.Price.IsZero())
	})

	t.Run("runs on the writer", func(t *testing.T) {
		t.Cleanup(restore)
		createCard = func(_ context.Context, _ database.Querier, c *model.Card) (*model.Card, error) { return c, nil }
		wrote := false
		db := &database.FakeDB{WriteFn: func(ctx context.Context, fn func(context.Context) error) error {
			wrote = true
			return fn(ctx)
		}}
		ctx, rec := newCtx(e, http.MethodPost, "", `{"name":"Holo","description":"rare","price":"9.99"}`, 1)
		require.NoError(t, CreateCardHandler(db)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.True(t, wrote)
	})
}

func TestListCardsHandler(t *testing.T) {
	e := echo.New()

	t.Run("empty", func(t *testing.T) {
		t.Cleanup(restore)
		listCards = func(context.Context, database.Querier) ([]model.Card, error) { return []model.Card{}, nil }
		ctx, rec := newCtx(e, http.MethodGet, "", "", 0)
		require.NoError(t, ListCardsHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("cards", func(t *testing.T) {
		t.Cleanup(restore)
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		listCards = func(context.Context, database.Querier) ([]model.Card, error) {
			return []model.Card{{ID: 1, UserID: 2, Name: "Holo", Description: "rare", Price: decimal.RequireFromString("9.99"), CreatedAt: created}}, nil
		}
		ctx, rec := newCtx(e, http.MethodGet, "", "", 0)
		require.NoError(t, ListCardsHandler(&database.FakeDB{})(ctx))
		require.JSONEq(t,
			`[{"id":1,"user_id":2,"name":"Holo","description":"rare","price":9.99,"created_at":"2024-01-02T03:04:05Z"}]`,
			rec.Body.String())
	})

	t.Run("error", func(t *testing.T) {
		t.Cleanup(restore)
		listCards = func(context.Context, database.Querier) ([]model.Card, error) { return nil, errors.New("db") }
		ctx, rec := newCtx(e, http.MethodGet, "", "", 0)
		require.NoError(t, ListCardsHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetCardHandler(t *testing.T) {
	e := echo.New()

	t.Run("invalid id", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodGet, "abc", "", 0)
		require.NoError(t, GetCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"message":"invalid card ID"}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = func(context.Context, database.Querier, int64) (*model.Card, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newCtx(e, http.MethodGet, "99", "", 0)
		require.NoError(t, GetCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"message":"Card not found"}`, rec.Body.String())
	})

	t.Run("error", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = func(context.Context, database.Querier, int64) (*model.Card, error) {
			return nil, errors.New("db")
		}
		ctx, rec := newCtx(e, http.MethodGet, "1", "", 0)
		require.NoError(t, GetCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = ownedBy(2)
		ctx, rec := newCtx(e, http.MethodGet, "5", "", 0)
		require.NoError(t, GetCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":5`)
		require.Contains(t, rec.Body.String(), `"price":9.99`)
	})
}

func TestUpdateCardHandler(t *testing.T) {
	e := echo.New()

	t.Run("invalid id", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodPut, "x", `{}`, 1)
		require.NoError(t, UpdateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty name", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodPut, "1", `{"name":" "}`, 1)
		require.NoError(t, UpdateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative price", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodPut, "1", `{"price":-0.01}`, 1)
		require.NoError(t, UpdateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "price must be non-negative")
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = func(context.Context, database.Querier, int64) (*model.Card, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newCtx(e, http.MethodPut, "1", `{"name":"New"}`, 1)
		require.NoError(t, UpdateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("not owner", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = ownedBy(2)
		updateCard = func(context.Context, database.Querier, *model.Card) error {
			t.Fatal("updateCard must not run")
			return nil
		}
		ctx, rec := newCtx(e, http.MethodPut, "1", `{"name":"New"}`, 1)
		require.NoError(t, UpdateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.JSONEq(t, `{"message":"Not allowed"}`, rec.Body.String())
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = ownedBy(1)
		var got *model.Card
		updateCard = func(_ context.Context, _ database.Querier, c *model.Card) error {
			got = c
			return nil
		}
		ctx, rec := newCtx(e, http.MethodPut, "1", `{"price":0}`, 1)
		require.NoError(t, UpdateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"message":"Card updated successfully"}`, rec.Body.String())
		require.Equal(t, "Holo", got.Name)
		require.Equal(t, "rare", got.Description)
		require.True(t, got.Price.IsZero())
	})

	t.Run("all fields", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = ownedBy(1)
		var got *model.Card
		updateCard = func(_ context.Context, _ database.Querier, c *model.Card) error {
			got = c
			return nil
		}
		ctx, rec := newCtx(e, http.MethodPut, "1", `{"name":"New","description":"desc","price":12.5}`, 1)
		require.NoError(t, UpdateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "New", got.Name)
		require.Equal(t, "desc", got.Description)
		require.Equal(t, "12.5", got.Price.String())
	})

	t.Run("update error", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = ownedBy(1)
		updateCard = func(context.Context, database.Querier, *model.Card) error { return errors.New("db") }
		ctx, rec := newCtx(e, http.MethodPut, "1", `{"name":"New"}`, 1)
		require.NoError(t, UpdateCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestDeleteCardHandler(t *testing.T) {
	e := echo.New()

	t.Run("invalid id", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodDelete, "1.5", "", 1)
		require.NoError(t, DeleteCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no claims", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodDelete, "1", "", 0)
		require.NoError(t, DeleteCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = func(context.Context, database.Querier, int64) (*model.Card, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newCtx(e, http.MethodDelete, "1", "", 1)
		require.NoError(t, DeleteCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("not owner", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = ownedBy(2)
		ctx, rec := newCtx(e, http.MethodDelete, "1", "", 1)
		require.NoError(t, DeleteCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Cleanup(restore)
		getCardByID = ownedBy(1)
		deleted := int64(0)
		deleteCard = func(_ context.Context, _ database.Querier, id int64) error {
			deleted = id
			return nil
		}
		ctx, rec := newCtx(e, http.MethodDelete, "3", "", 1)
		require.NoError(t, DeleteCardHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"message":"Card deleted successfully"}`, rec.Body.String())
		require.Equal(t, int64(3), deleted)
	})
}
