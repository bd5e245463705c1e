package ovg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleClass = `{
	"title": "Hidroginástica",
	"start": "2026-08-24T09:00:00Z",
	"end": "2026-08-24T09:50:00Z",
	"room": "Piscina",
	"instructor": "Carla",
	"intensity": "Moderada"
}`

func TestNormalizeEnvelopeDirectArray(t *testing.T) {
	classes, err := NormalizeEnvelope([]byte(`[` + sampleClass + `]`))
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Hidroginástica", classes[0].Title)
	assert.Equal(t, "Moderada", classes[0].IntensityText)
}

func TestNormalizeEnvelopeNestedKeys(t *testing.T) {
	// Cada formato já observado em alguma versão da API do OVG.
	for _, key := range []string{"data", "aulas", "items", "results"} {
		t.Run(key, func(t *testing.T) {
			body := []byte(`{"` + key + `": [` + sampleClass + `]}`)
			classes, err := NormalizeEnvelope(body)
			require.NoError(t, err)
			require.Len(t, classes, 1)
			assert.Equal(t, "Piscina", classes[0].Room)
		})
	}
}

func TestNormalizeEnvelopePrefersDataOverLaterKeys(t *testing.T) {
	body := []byte(`{
		"results": [],
		"data": [` + sampleClass + `]
	}`)
	classes, err := NormalizeEnvelope(body)
	require.NoError(t, err)
	assert.Len(t, classes, 1)
}

func TestNormalizeEnvelopeEmptyArrayIsValid(t *testing.T) {
	classes, err := NormalizeEnvelope([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestNormalizeEnvelopeUnknownShapesFail(t *testing.T) {
	for _, body := range []string{
		`{"semana": []}`,
		`"texto solto"`,
		`{`,
	} {
		_, err := NormalizeEnvelope([]byte(body))
		assert.ErrorIs(t, err, ErrUnknownEnvelope, "corpo: %s", body)
	}
}
