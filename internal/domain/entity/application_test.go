package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

func validForm() entity.ApplicationForm {
	return entity.ApplicationForm{
		FirstName:   "Ana",
		LastName:    "Gómez",
		Email:       "ana@example.com",
		Phone:       "+573001112233",
		DateOfBirth: "1990-04-12",
		Address:     "Calle 1 # 2-3",
		City:        "Bogotá",
		Country:     "Colombia",
	}
}

func TestPolicyApplication_FlujoCompleto(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	app := entity.NewPolicyApplication("app-1", "1", now)
	assert.Equal(t, entity.StageBrowsing, app.Stage)

	require.NoError(t, app.OpenForm(now))
	assert.Equal(t, entity.StageApplicationForm, app.Stage)

	require.NoError(t, app.SubmitForm(validForm(), []byte("h1"), []byte("h2"), now.Add(10*time.Minute), now))
	assert.Equal(t, entity.StageOTPVerification, app.Stage)
	require.NotNil(t, app.Form)

	require.NoError(t, app.MarkVerified(now))
	assert.Equal(t, entity.StageCheckout, app.Stage)
	assert.True(t, app.EmailVerified)
	assert.True(t, app.PhoneVerified)
	assert.Nil(t, app.EmailOTPHash, "los hashes se descartan al verificar")

	require.NoError(t, app.MarkPaid("pay-1", now))
	assert.Equal(t, entity.StagePaid, app.Stage)
	assert.Equal(t, "pay-1", app.PaymentID)
}

func TestPolicyApplication_SaltoDeEtapa_RetornaErrInvalidStage(t *testing.T) {
	now := time.Now()
	app := entity.NewPolicyApplication("app-1", "1", now)

	err := app.SubmitForm(validForm(), nil, nil, now, now)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)

	err = app.MarkVerified(now)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)

	err = app.MarkPaid("pay-1", now)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
	assert.Equal(t, entity.StageBrowsing, app.Stage, "la etapa no cambia ante un error")
}

func TestPolicyApplication_CancelVuelveABrowsing(t *testing.T) {
	now := time.Now()
	app := entity.NewPolicyApplication("app-1", "1", now)
	require.NoError(t, app.OpenForm(now))
	require.NoError(t, app.SubmitForm(validForm(), []byte("h1"), []byte("h2"), now.Add(time.Minute), now))

	require.NoError(t, app.Cancel(now))
	assert.Equal(t, entity.StageBrowsing, app.Stage)
	assert.Nil(t, app.Form)
	assert.Nil(t, app.EmailOTPHash)
	assert.True(t, app.OTPExpiresAt.IsZero())
}

func TestPolicyApplication_CancelDespuesDePagar_Falla(t *testing.T) {
	now := time.Now()
	app := entity.NewPolicyApplication("app-1", "1", now)
	app.Stage = entity.StagePaid

	assert.ErrorIs(t, app.Cancel(now), domain.ErrInvalidStage)
	assert.Equal(t, entity.StagePaid, app.Stage)
}

func TestApplicationForm_Validate(t *testing.T) {
	assert.NoError(t, validForm().Validate())

	sinCiudad := validForm()
	sinCiudad.City = "  "
	assert.ErrorIs(t, sinCiudad.Validate(), domain.ErrInvalidInput)

	emailMalo := validForm()
	emailMalo.Email = "no-es-un-email"
	assert.ErrorIs(t, emailMalo.Validate(), domain.ErrInvalidInput)

	fechaMala := validForm()
	fechaMala.DateOfBirth = "12/04/1990"
	assert.ErrorIs(t, fechaMala.Validate(), domain.ErrInvalidInput)
}
