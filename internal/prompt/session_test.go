package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/feedback"
	"github.com/goliatone/go-cardioform/pkg/form"
)

type stubDriver struct {
	inputs  map[string]string
	selects map[string]int
	infos   []string
	fail    error
}

func (d *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if d.fail != nil {
		return "", d.fail
	}
	for prefix, value := range d.inputs {
		if strings.HasPrefix(cfg.Message, prefix) {
			if cfg.Validator != nil {
				if err := cfg.Validator(value); err != nil {
					return "", err
				}
			}
			return value, nil
		}
	}
	return "", nil
}

func (d *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	for prefix, idx := range d.selects {
		if strings.HasPrefix(cfg.Message, prefix) {
			return idx, nil
		}
	}
	return 0, nil
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func testCatalog(t *testing.T) *form.Catalog {
	t.Helper()
	catalog, err := form.NewCatalog(
		form.Field{Name: "age", Label: "Age", Kind: form.KindNumber, Min: classify.Float(1), Max: classify.Float(120), Required: true},
		form.Field{Name: "chol", Label: "Cholesterol", Unit: "mg/dl", Kind: form.KindNumber, Min: classify.Float(100), Max: classify.Float(600)},
		form.Field{Name: "sex", Label: "Sex", Kind: form.KindSelect, Required: true, Options: []form.Option{{Value: "1", Label: "Male"}, {Value: "0", Label: "Female"}}},
		form.Field{Name: "thal", Label: "Thalassemia", Kind: form.KindSelect, Options: []form.Option{{Value: "1", Label: "Normal"}}},
	)
	require.NoError(t, err)
	return catalog
}

func TestSession_CollectsAnswersAndStatuses(t *testing.T) {
	driver := &stubDriver{
		inputs:  map[string]string{"Age": "63", "Cholesterol (mg/dl)": " 233 "},
		selects: map[string]int{"Sex": 1, "Thalassemia": 0},
	}
	session, err := NewSession(testCatalog(t), nil, driver)
	require.NoError(t, err)

	answers, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"age": "63", "chol": "233", "sex": "0"}, answers)
	assert.Equal(t, classify.StatusValid, session.Component().Status("age"))
	assert.Equal(t, classify.StatusWarning, session.Component().Status("chol"))
	assert.Equal(t, []string{"chol"}, session.Component().Flagged())

	assert.Contains(t, driver.infos, "  Age: valid")
	assert.Contains(t, driver.infos, "  Cholesterol: warning")
	assert.Contains(t, driver.infos, feedback.DefaultPendingLabel)
	assert.True(t, session.Component().SubmitState().Pending)
}

func TestSession_ValidatorRejectsNonNumeric(t *testing.T) {
	driver := &stubDriver{inputs: map[string]string{"Age": "abc"}}
	session, err := NewSession(testCatalog(t), nil, driver)
	require.NoError(t, err)

	_, err = session.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt: age")
}

func TestSession_Aborted(t *testing.T) {
	driver := &stubDriver{fail: ErrAborted}
	session, err := NewSession(testCatalog(t), nil, driver)
	require.NoError(t, err)

	_, err = session.Run(context.Background())
	assert.True(t, errors.Is(err, ErrAborted))
}

func TestNewSession_RequiresDependencies(t *testing.T) {
	_, err := NewSession(nil, nil, &stubDriver{})
	require.Error(t, err)
	_, err = NewSession(testCatalog(t), nil, nil)
	require.Error(t, err)
}

func TestNumberValidator(t *testing.T) {
	required := numberValidator(form.Field{Name: "age", Required: true})
	assert.Error(t, required(""))
	assert.Error(t, required("NaN"))
	assert.NoError(t, required("42.5"))

	optional := numberValidator(form.Field{Name: "chol"})
	assert.NoError(t, optional(""))
}
