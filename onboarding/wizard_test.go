package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/state"
)

type mockBusinessAPI struct {
	created []dto.CreateBusinessRequest
	updated []dto.UpdateBusinessRequest
	err     error
}

func (m *mockBusinessAPI) CreateBusiness(_ context.Context, req dto.CreateBusinessRequest) (dto.Business, error) {
	m.created = append(m.created, req)
	if m.err != nil {
		return dto.Business{}, m.err
	}
	return dto.Business{ID: "b1", Name: req.Name, Type: req.Type, ActivitySector: req.ActivitySector}, nil
}

func (m *mockBusinessAPI) UpdateBusiness(_ context.Context, id string, req dto.UpdateBusinessRequest) (dto.Business, error) {
	m.updated = append(m.updated, req)
	if m.err != nil {
		return dto.Business{}, m.err
	}
	return dto.Business{ID: id, Name: *req.Name}, nil
}

func fillValid(t *testing.T, w *Wizard) {
	t.Helper()
	w.SetType("restaurateur")
	require.NoError(t, w.Next())
	w.SetIdentity(" Le Baobab ", "Restauration", "Cuisine comorienne")
	require.NoError(t, w.Next())
	w.SetContact("Moroni, Grande Comore", "+269 321 45 67")
	require.NoError(t, w.Next())
	w.SetMedia("https://cdn.example.com/logo.png", "")
	require.NoError(t, w.Next())
}

func TestWizardStepValidation(t *testing.T) {
	w := NewWizard(&mockBusinessAPI{}, &state.CurrentBusiness{}, nil)

	err := w.Next()
	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "type")
	assert.Equal(t, StepType, w.Step())

	w.SetType(dto.BusinessCommercant)
	require.NoError(t, w.Next())

	err = w.Next()
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "activitySector")
	assert.NotContains(t, verr.Fields, "address")

	w.SetIdentity("Boutique Awa", "Alimentation", "")
	require.NoError(t, w.Next())

	w.SetContact("Mutsamudu", "12")
	err = w.Next()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"phone": "invalid phone number"}, verr.Fields)
	assert.Equal(t, StepContact, w.Step())

	require.NoError(t, w.Back())
	assert.Equal(t, StepIdentity, w.Step())
}

func TestWizardSubmit(t *testing.T) {
	api := &mockBusinessAPI{}
	current := &state.CurrentBusiness{}
	w := NewWizard(api, current, nil)
	fillValid(t, w)
	assert.Equal(t, StepReview, w.Step())

	b, err := w.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	require.Len(t, api.created, 1)
	assert.Equal(t, dto.CreateBusinessRequest{
		Name:           "Le Baobab",
		Type:           dto.BusinessRestaurateur,
		ActivitySector: "Restauration",
		Description:    "Cuisine comorienne",
		Address:        "Moroni, Grande Comore",
		Phone:          "+2693214567",
		LogoURL:        "https://cdn.example.com/logo.png",
	}, api.created[0])

	selected, ok := current.Get()
	require.True(t, ok)
	assert.Equal(t, "b1", selected.ID)
	assert.Equal(t, "/dashboard/restaurateur", selected.Type.DashboardPath())
}

func TestWizardSubmitGuards(t *testing.T) {
	api := &mockBusinessAPI{err: errors.New("down")}
	current := &state.CurrentBusiness{}
	w := NewWizard(api, current, nil)

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, api.created)
	assert.ErrorIs(t, w.Back(), ErrFirstStep)

	fillValid(t, w)
	_, err = w.Submit(context.Background())
	assert.Error(t, err)
	_, ok := current.Get()
	assert.False(t, ok)
}

func TestUpdateBusiness(t *testing.T) {
	name := "Nouveau nom"
	blank := "  "
	phone := "32 14 56 78"

	t.Run("invalid update is not sent", func(t *testing.T) {
		api := &mockBusinessAPI{}
		_, err := UpdateBusiness(context.Background(), api, &state.CurrentBusiness{}, "b1", dto.UpdateBusinessRequest{Name: &blank})
		var verr *dto.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, api.updated)

		_, err = UpdateBusiness(context.Background(), api, &state.CurrentBusiness{}, "b1", dto.UpdateBusinessRequest{})
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, api.updated)
	})

	t.Run("refreshes the current business", func(t *testing.T) {
		api := &mockBusinessAPI{}
		current := &state.CurrentBusiness{}
		current.Set(dto.Business{ID: "b1", Name: "Ancien"})

		_, err := UpdateBusiness(context.Background(), api, current, "b1", dto.UpdateBusinessRequest{Name: &name, Phone: &phone})

		require.NoError(t, err)
		assert.Equal(t, "32145678", *api.updated[0].Phone)
		b, _ := current.Get()
		assert.Equal(t, "Nouveau nom", b.Name)
	})

	t.Run("other business leaves selection alone", func(t *testing.T) {
		api := &mockBusinessAPI{}
		current := &state.CurrentBusiness{}
		current.Set(dto.Business{ID: "b2", Name: "Autre"})

		_, err := UpdateBusiness(context.Background(), api, current, "b1", dto.UpdateBusinessRequest{Name: &name})

		require.NoError(t, err)
		b, _ := current.Get()
		assert.Equal(t, "Autre", b.Name)
	})
}
