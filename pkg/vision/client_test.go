package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDamage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/complaint/damage-detection", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "aGVsbG8=", body["image"])
		assert.Equal(t, "box arrived crushed", body["comment"])

		_, _ = w.Write([]byte(`{
			"success": true,
			"assessment": {
				"is_damaged": true,
				"damage_severity": "moderate",
				"damage_type": "crushed packaging",
				"reasoning": "visible deformation on two sides",
				"recommendation": "approve_return"
			}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	assessment, err := client.DetectDamage(context.Background(), "aGVsbG8=", "box arrived crushed")
	require.NoError(t, err)

	assert.True(t, assessment.IsDamaged)
	assert.Equal(t, "moderate", assessment.DamageSeverity)
	assert.Equal(t, RecommendApproveReturn, assessment.Recommendation)
}

func TestDetectDamageServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "image could not be decoded"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.DetectDamage(context.Background(), "not-base64", "")
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, "image could not be decoded", svcErr.Message)
}

func TestDetectDamageMissingAssessment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.DetectDamage(context.Background(), "aGVsbG8=", "")
	assert.ErrorIs(t, err, ErrEmptyAssessment)
}
