package page

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"savora-web/internal/core/notification"
	"savora-web/internal/core/persistence"
	"savora-web/internal/core/recipe"
	"savora-web/internal/core/service"
	"savora-web/internal/core/session"
	"savora-web/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	mu       sync.Mutex
	requests []service.GenerateRequest
	fn       func(req service.GenerateRequest) (*service.GenerateResult, error)
}

func (f *fakeGenerator) Generate(_ context.Context, req service.GenerateRequest) (*service.GenerateResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.fn(req)
}

type fakeNutrition struct {
	calls  int
	detail *recipe.NutritionDetail
	err    error
}

func (f *fakeNutrition) AnalyzeNutrition(context.Context, recipe.Recipe) (*recipe.NutritionDetail, error) {
	f.calls++
	return f.detail, f.err
}

type fakeChat struct {
	question string
	context  recipe.Recipe
	answer   string
	err      error
}

func (f *fakeChat) Ask(_ context.Context, question string, r recipe.Recipe) (string, error) {
	f.question = question
	f.context = r
	return f.answer, f.err
}

type recordingStore struct {
	mu      sync.Mutex
	entries map[persistence.Collection][]persistence.Entry
	err     error
}

func (r *recordingStore) Append(_ context.Context, c persistence.Collection, e persistence.Entry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	if r.entries == nil {
		r.entries = make(map[persistence.Collection][]persistence.Entry)
	}
	r.entries[c] = append(r.entries[c], e)
	return "doc-id", nil
}

func (r *recordingStore) count(c persistence.Collection) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries[c])
}

type fixture struct {
	orch  *Orchestrator
	gen   *fakeGenerator
	nut   *fakeNutrition
	chat  *fakeChat
	store *recordingStore
}

const sid = "session-1"

var alice = User{ID: "user-alice", Email: "alice@example.com"}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := session.NewMemoryStore(config.SessionConfig{TTL: time.Hour, MaxSize: 100})
	t.Cleanup(func() { kv.Close() })

	f := &fixture{
		gen:   &fakeGenerator{fn: func(service.GenerateRequest) (*service.GenerateResult, error) { return nil, errors.New("not scripted") }},
		nut:   &fakeNutrition{},
		chat:  &fakeChat{},
		store: &recordingStore{},
	}
	f.orch = NewOrchestrator(NewStateStore(kv), f.gen, f.nut, f.chat, f.store)
	f.orch.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func structuredResult(t *testing.T, raw string) *service.GenerateResult {
	t.Helper()
	r, err := recipe.Parse(json.RawMessage(raw), "json")
	require.NoError(t, err)
	return &service.GenerateResult{Success: true, Recipe: r, Format: "json"}
}

func TestCustomizationFlowEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
		return structuredResult(t, `{"title":"Chicken Rice Bowl","ingredients":["chicken","rice"],"instructions":["cook"]}`), nil
	}

	st, err := f.orch.HandleGenerate(ctx, sid, "chicken, rice")
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaitingCustomization, st.Phase)
	assert.True(t, st.ShowCustomization)

	st, err = f.orch.HandleCustomizationSubmit(ctx, sid, alice, recipe.Customization{
		Ingredients: "chicken, rice",
		Cuisine:     "Indian",
	})
	require.NoError(t, err)

	require.Len(t, f.gen.requests, 1)
	req := f.gen.requests[0]
	assert.Equal(t, []string{"chicken", "rice"}, req.Ingredients)
	assert.Equal(t, "Indian", req.Cuisine)
	assert.Equal(t, "2-3 people", req.Portion)
	assert.Equal(t, "Medium", req.SpiceLevel)

	assert.Equal(t, PhaseDisplaying, st.Phase)
	assert.False(t, st.Loading)
	assert.False(t, st.ShowCustomization)
	assert.Equal(t, "Chicken Rice Bowl", st.Recipe.Title())
	assert.Equal(t, "Indian", st.Filters.Cuisine)
	assert.Nil(t, st.Notification)

	view := NewView(st, alice)
	require.NotNil(t, view.Card)
	assert.Equal(t, "Chicken Rice Bowl", view.Card.Title)
	assert.Equal(t, []string{"chicken", "rice"}, view.Card.Ingredients)

	require.Equal(t, 1, f.store.count(persistence.History))
	entry := f.store.entries[persistence.History][0]
	assert.Equal(t, alice.ID, entry.UserID)
	assert.Equal(t, "chicken, rice", entry.Ingredients)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", entry.CreatedAt)
}

func TestHandleGenerateRejectsBlankIngredients(t *testing.T) {
	f := newFixture(t)

	st, err := f.orch.HandleGenerate(context.Background(), sid, "   ")
	require.NoError(t, err)

	require.NotNil(t, st.Notification)
	assert.Equal(t, notification.Warning, st.Notification.Severity)
	assert.Equal(t, notification.MsgEmptyIngredients, st.Notification.Message)
	assert.False(t, st.ShowCustomization)
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Empty(t, f.gen.requests)
}

func TestGenerationFailureClearsRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
		return structuredResult(t, `{"title":"First"}`), nil
	}
	_, err := f.orch.HandleCustomizationSubmit(ctx, sid, User{}, recipe.Customization{Ingredients: "eggs"})
	require.NoError(t, err)

	f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
		return &service.GenerateResult{Success: false, Error: "model overloaded"}, nil
	}
	st, err := f.orch.HandleCustomizationSubmit(ctx, sid, User{}, recipe.Customization{Ingredients: "eggs"})
	require.NoError(t, err)

	assert.False(t, st.HasRecipe())
	assert.Equal(t, PhaseIdle, st.Phase)
	require.NotNil(t, st.Notification)
	assert.Equal(t, notification.Error, st.Notification.Severity)
	assert.Equal(t, "Error generating recipe: model overloaded", st.Notification.Message)
}

func TestGenerationTransportFailure(t *testing.T) {
	f := newFixture(t)
	f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
		return nil, service.ErrUnavailable
	}

	st, err := f.orch.HandleCustomizationSubmit(context.Background(), sid, alice, recipe.Customization{Ingredients: "eggs"})
	require.NoError(t, err)

	require.NotNil(t, st.Notification)
	assert.Equal(t, notification.MsgConnectionFailed, st.Notification.Message)
	assert.False(t, st.Loading)
	assert.Equal(t, 0, f.store.count(persistence.History))
}

func TestStaleGenerationIsDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	f.gen.fn = func(req service.GenerateRequest) (*service.GenerateResult, error) {
		if req.RecipeName == "" {
			close(entered)
			<-release
			return structuredResult(t, `{"title":"Slow Recipe"}`), nil
		}
		return structuredResult(t, `{"title":"Fast Recipe"}`), nil
	}

	done := make(chan *State)
	go func() {
		st, err := f.orch.HandleCustomizationSubmit(ctx, sid, alice, recipe.Customization{Ingredients: "eggs"})
		assert.NoError(t, err)
		done <- st
	}()
	<-entered

	suggestion, ok := recipe.FindSuggestion("pad-thai")
	require.True(t, ok)
	st, err := f.orch.HandleCarouselRecipeClick(ctx, sid, alice, suggestion)
	require.NoError(t, err)
	assert.Equal(t, "Fast Recipe", st.Recipe.Title())

	close(release)
	<-done

	final, err := f.orch.Load(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "Fast Recipe", final.Recipe.Title())
	assert.Equal(t, "Thai", final.Filters.Cuisine)
	assert.False(t, final.Loading)
	assert.Equal(t, 1, f.store.count(persistence.History))
}

func TestCarouselClickClearsIngredients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
		return &service.GenerateResult{Success: true, Recipe: recipe.NewText("Step 1: boil"), Format: "text"}, nil
	}

	_, err := f.orch.SetIngredients(ctx, sid, "Salmon, Lemon, Dill")
	require.NoError(t, err)

	suggestion, _ := recipe.FindSuggestion("butter-chicken")
	st, err := f.orch.HandleCarouselRecipeClick(ctx, sid, User{}, suggestion)
	require.NoError(t, err)

	require.Len(t, f.gen.requests, 1)
	req := f.gen.requests[0]
	assert.Equal(t, []string{}, req.Ingredients)
	assert.Equal(t, "Butter Chicken", req.RecipeName)
	assert.Equal(t, "Indian", req.Cuisine)
	assert.Equal(t, "45 mins", req.CookingTime)

	assert.Empty(t, st.Ingredients)
	assert.Equal(t, "Indian", st.Filters.Cuisine)
	assert.Equal(t, "Any", st.Filters.Taste)
	assert.Equal(t, "Step 1: boil", st.Recipe.DisplayText())
	assert.Equal(t, 0, f.store.count(persistence.History))
}

func TestHistoryFailureNotifies(t *testing.T) {
	f := newFixture(t)
	f.store.err = errors.New("quota exceeded")
	f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
		return structuredResult(t, `{"title":"Omelette"}`), nil
	}

	st, err := f.orch.HandleCustomizationSubmit(context.Background(), sid, alice, recipe.Customization{Ingredients: "eggs"})
	require.NoError(t, err)

	assert.Equal(t, "Omelette", st.Recipe.Title())
	require.NotNil(t, st.Notification)
	assert.Equal(t, "Failed to save to history: quota exceeded", st.Notification.Message)
}

func TestSaveToFavorites(t *testing.T) {
	ctx := context.Background()

	t.Run("requires login", func(t *testing.T) {
		f := newFixture(t)
		st, err := f.orch.SaveToFavorites(ctx, sid, User{})
		require.NoError(t, err)
		assert.Equal(t, notification.MsgLoginForFavorites, st.Notification.Message)
		assert.Equal(t, notification.Warning, st.Notification.Severity)
		assert.Equal(t, 0, f.store.count(persistence.Favorites))
	})

	t.Run("requires recipe", func(t *testing.T) {
		f := newFixture(t)
		st, err := f.orch.SaveToFavorites(ctx, sid, alice)
		require.NoError(t, err)
		assert.Equal(t, notification.MsgNoRecipeToSave, st.Notification.Message)
		assert.Equal(t, 0, f.store.count(persistence.Favorites))
	})

	t.Run("saves current recipe", func(t *testing.T) {
		f := newFixture(t)
		f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
			return structuredResult(t, `{"title":"Paneer Tikka"}`), nil
		}
		_, err := f.orch.HandleGenerate(ctx, sid, "paneer")
		require.NoError(t, err)
		_, err = f.orch.HandleCustomizationSubmit(ctx, sid, alice, recipe.Customization{Ingredients: "paneer", Cuisine: "Indian"})
		require.NoError(t, err)

		st, err := f.orch.SaveToFavorites(ctx, sid, alice)
		require.NoError(t, err)
		assert.Equal(t, notification.Success, st.Notification.Severity)
		assert.Equal(t, notification.MsgFavoriteSaved, st.Notification.Message)

		require.Equal(t, 1, f.store.count(persistence.Favorites))
		fav := f.store.entries[persistence.Favorites][0]
		assert.Equal(t, "paneer", fav.Ingredients)
		assert.Equal(t, "Indian", fav.Filters.Cuisine)
	})

	t.Run("reports store failure", func(t *testing.T) {
		f := newFixture(t)
		f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
			return structuredResult(t, `{"title":"Soup"}`), nil
		}
		_, err := f.orch.HandleCustomizationSubmit(ctx, sid, User{}, recipe.Customization{Ingredients: "leeks"})
		require.NoError(t, err)

		f.store.err = errors.New("permission denied")
		st, err := f.orch.SaveToFavorites(ctx, sid, alice)
		require.NoError(t, err)
		assert.Equal(t, notification.Error, st.Notification.Severity)
		assert.Equal(t, "Failed to save to favorites: permission denied", st.Notification.Message)
	})
}

func TestFetchNutrition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var detail recipe.NutritionDetail
	require.NoError(t, json.Unmarshal([]byte(`{"perServing":{"calories":"300kcal"},"healthScore":8}`), &detail))
	f.nut.detail = &detail
	f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
		return structuredResult(t, `{"title":"Salad"}`), nil
	}

	st, err := f.orch.FetchNutrition(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 0, f.nut.calls)
	assert.False(t, st.Nutrition.Open)

	_, err = f.orch.HandleCustomizationSubmit(ctx, sid, User{}, recipe.Customization{Ingredients: "lettuce"})
	require.NoError(t, err)

	st, err = f.orch.FetchNutrition(ctx, sid)
	require.NoError(t, err)
	panel := NewView(st, User{}).Card.Nutrition
	require.NotNil(t, panel)
	require.Len(t, panel.Tiles, 1)
	assert.Equal(t, "Calories: 300kcal", panel.Tiles[0].String())
	assert.Equal(t, "8/10", panel.HealthScore)

	_, err = f.orch.FetchNutrition(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 2, f.nut.calls)

	st, err = f.orch.CloseNutrition(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, NewView(st, User{}).Card.Nutrition)
}

func TestFetchNutritionFailureIsSilent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.nut.err = errors.New("timeout")
	f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
		return structuredResult(t, `{"title":"Stew"}`), nil
	}
	_, err := f.orch.HandleCustomizationSubmit(ctx, sid, User{}, recipe.Customization{Ingredients: "beef"})
	require.NoError(t, err)

	st, err := f.orch.FetchNutrition(ctx, sid)
	require.NoError(t, err)

	assert.Nil(t, st.Notification)
	assert.True(t, st.Nutrition.Open)
	assert.False(t, st.Nutrition.Loading)
	panel := NewView(st, User{}).Card.Nutrition
	require.NotNil(t, panel)
	assert.Equal(t, "No nutrition data available", panel.Placeholder)
}

func TestAskChatbot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
		return structuredResult(t, `{"title":"Risotto"}`), nil
	}
	_, err := f.orch.HandleCustomizationSubmit(ctx, sid, User{}, recipe.Customization{Ingredients: "rice"})
	require.NoError(t, err)

	st, err := f.orch.AskChatbot(ctx, sid, "  ")
	require.NoError(t, err)
	assert.Equal(t, notification.MsgEmptyQuestion, st.Notification.Message)
	assert.Empty(t, f.chat.question)

	f.chat.answer = "Use arborio."
	st, err = f.orch.AskChatbot(ctx, sid, "Which rice?")
	require.NoError(t, err)
	assert.Equal(t, "Which rice?", f.chat.question)
	assert.Equal(t, "Risotto", f.chat.context.Title())
	assert.Equal(t, []ChatMessage{
		{Role: "user", Content: "Which rice?"},
		{Role: "assistant", Content: "Use arborio."},
	}, st.Chat)
	assert.False(t, st.ChatPending)

	f.chat.err = errors.New("service down")
	st, err = f.orch.AskChatbot(ctx, sid, "How long?")
	require.NoError(t, err)
	assert.Equal(t, "Failed to get answer: service down", st.Notification.Message)
	assert.Len(t, st.Chat, 3)

	st, err = f.orch.CloseChatbot(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, NewView(st, User{}).Chatbot)
}

func TestDismissNotification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	st, err := f.orch.HandleGenerate(ctx, sid, "")
	require.NoError(t, err)
	require.NotNil(t, st.Notification)

	st, err = f.orch.DismissNotification(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, st.Notification)
}

func TestResetPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.gen.fn = func(service.GenerateRequest) (*service.GenerateResult, error) {
		return structuredResult(t, `{"title":"Pad Thai","ingredients":["noodles"]}`), nil
	}

	pad, ok := recipe.FindSuggestion("pad-thai")
	require.True(t, ok)
	st, err := f.orch.HandleCarouselRecipeClick(ctx, sid, User{}, pad)
	require.NoError(t, err)
	require.True(t, st.HasRecipe())

	st, err = f.orch.ResetPage(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.False(t, st.HasRecipe())

	st, err = f.orch.Load(ctx, sid)
	require.NoError(t, err)
	assert.False(t, st.HasRecipe())
	assert.Zero(t, st.GenerationSeq)
}
