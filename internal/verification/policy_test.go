package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateIdentity(t *testing.T) {
	t.Run("pan verified", func(t *testing.T) {
		eval := EvaluateIdentity(Payload(`{"status":1,"name":"Test User","pan":"ABCDE1234F"}`), false)
		assert.True(t, eval.Verified)
		require.NotNil(t, eval.Score)
		assert.Equal(t, 100, *eval.Score)
		assert.Equal(t, true, eval.Data["panVerified"])
		assert.Equal(t, "Test User", eval.Data["panName"])
		assert.Equal(t, CheckVerified, eval.CheckStatus())
	})

	t.Run("aadhaar only", func(t *testing.T) {
		eval := EvaluateIdentity(nil, true)
		assert.True(t, eval.Verified)
		assert.Equal(t, 100, *eval.Score)
		assert.Equal(t, false, eval.Data["panVerified"])
	})

	t.Run("nothing verified", func(t *testing.T) {
		eval := EvaluateIdentity(Payload(`{}`), false)
		assert.False(t, eval.Verified)
		assert.Equal(t, 50, *eval.Score)
		assert.Equal(t, CheckPending, eval.CheckStatus())
	})
}

func TestEvaluateEmployment(t *testing.T) {
	eval := EvaluateEmployment("123456789012", Payload(`{"employment_history":[{"company":"Acme"},{"company":"Initech"}]}`))
	assert.True(t, eval.Verified)
	assert.Nil(t, eval.Score)
	assert.Equal(t, "123456789012", eval.Data["uan"])
	assert.Equal(t, 2, eval.Data["employers"])

	eval = EvaluateEmployment("", Payload(`{"employment_history":[{"company":"Acme"}]}`))
	assert.True(t, eval.Verified)

	eval = EvaluateEmployment("", nil)
	assert.False(t, eval.Verified)
}

func TestEvaluateCourt(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		verified  bool
		score     int
		wantTotal int
	}{
		{"no cases", `{"court_cases":[]}`, true, 100, 0},
		{"cases key", `{"cases":[{"caseNo":"1"}],"status":2,"pdfName":"r.pdf"}`, false, 60, 1},
		{"court_cases key", `{"court_cases":[{"caseNo":"1"},{"caseNo":"2"}]}`, false, 60, 2},
		{"explicit total wins", `{"cases":[],"total":0}`, true, 100, 0},
		{"empty answer", `{}`, false, 60, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := EvaluateCourt(Payload(tt.payload))
			assert.Equal(t, tt.verified, eval.Verified)
			assert.Equal(t, tt.score, *eval.Score)
			assert.Equal(t, tt.wantTotal, eval.Data["total"])
		})
	}

	eval := EvaluateCourt(Payload(`{"cases":[{"caseNo":"1"}],"data":{"pdfName":"nested.pdf"}}`))
	assert.Equal(t, "nested.pdf", eval.Data["pdfName"])
	assert.Equal(t, "nested.pdf", eval.Data["pdfUrl"])
}

func TestEvaluateAML(t *testing.T) {
	eval := EvaluateAML(Payload(`{"aml_status":"clear"}`))
	assert.True(t, eval.Verified)
	assert.Equal(t, 100, *eval.Score)
	assert.Equal(t, "clear", eval.Data["amlStatus"])

	for _, empty := range []string{``, `null`, `{}`, `[]`} {
		eval = EvaluateAML(Payload(empty))
		assert.False(t, eval.Verified, empty)
		assert.Equal(t, 60, *eval.Score, empty)
	}
}

func TestBankVerified(t *testing.T) {
	tests := []struct {
		payload string
		want    bool
	}{
		{`{"verificationStatus":"VERIFIED"}`, true},
		{`{"verificationStatus":"verified"}`, true},
		{`{"status":1}`, true},
		{`{"status":200}`, true},
		{`{"message":"Verified"}`, true},
		{`{"status":"200"}`, false},
		{`{"status":0,"message":"failed"}`, false},
		{`{"account_verified":true}`, false},
		{`{}`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BankVerified(Payload(tt.payload)), tt.payload)
	}
}

func TestBeneficiaryName(t *testing.T) {
	tests := []struct {
		payload string
		want    string
	}{
		{`{"beneficiaryName":"A"}`, "A"},
		{`{"beneficiary_name":"B"}`, "B"},
		{`{"result":{"beneficiaryName":"C"}}`, "C"},
		{`{"data":{"beneficiary_name":"D"}}`, "D"},
		{`{"ifscInfo":{"accountHolderName":"E"}}`, "E"},
		{`{"name":"F","account_holder":"ignored"}`, "F"},
		{`{"status":1}`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BeneficiaryName(Payload(tt.payload)), tt.payload)
	}
}

func TestEvaluateBank(t *testing.T) {
	eval := EvaluateBank(Payload(`{"status":1,"beneficiaryName":"Test User","nameMatchScore":92,"nameMatchStatus":"MATCH"}`))
	assert.True(t, eval.Verified)
	assert.Equal(t, 100, *eval.Score)
	assert.Equal(t, "Test User", eval.Data["beneficiaryName"])
	assert.Equal(t, float64(92), eval.Data["nameMatchScore"])
	assert.Equal(t, float64(1), eval.Data["verificationStatus"])

	eval = EvaluateBank(Payload(`{"verificationStatus":"FAILED"}`))
	assert.False(t, eval.Verified)
	assert.Equal(t, 60, *eval.Score)
	assert.Nil(t, eval.Data["beneficiaryName"])
	assert.Equal(t, "FAILED", eval.Data["verificationStatus"])
}

func TestPayloadValue(t *testing.T) {
	assert.Nil(t, Payload(nil).Value())
	assert.Equal(t, map[string]any{"a": float64(1)}, Payload(`{"a":1}`).Value())

	b, err := Payload(`{"a":1}`).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(b))
}
