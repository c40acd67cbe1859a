package verification

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Evaluation is the result of applying a check's policy to provider payloads.
type Evaluation struct {
	// Data is the display-ready subset merged into the report's data map.
	Data map[string]any
	// Score is nil for checks that are not scored.
	Score    *int
	Verified bool
}

// CheckStatus maps the success predicate onto the candidate check field.
func (e Evaluation) CheckStatus() CheckStatus {
	if e.Verified {
		return CheckVerified
	}
	return CheckPending
}

// EvaluateIdentity verifies identity by PAN (non-empty PAN payload) or by
// Aadhaar details captured earlier through the OTP flow.
func EvaluateIdentity(pan Payload, aadhaarVerified bool) Evaluation {
	panVerified := !pan.IsEmpty()
	data := map[string]any{
		"panVerified":    panVerified,
		"aadharVerified": aadhaarVerified,
	}
	if name := pan.Get("name"); name.Exists() {
		data["panName"] = name.String()
	}

	verified := panVerified || aadhaarVerified
	score := scoreIdentityUnproven
	if verified {
		score = scoreVerified
	}
	return Evaluation{Data: data, Score: IntPtr(score), Verified: verified}
}

// EvaluateEmployment succeeds once a UAN is resolved or any employment history
// came back. It never produces a score.
func EvaluateEmployment(uan string, history Payload) Evaluation {
	data := map[string]any{}
	if uan != "" {
		data["uan"] = uan
	}
	employers := history.Get("employment_history")
	if employers.IsArray() {
		data["employers"] = len(employers.Array())
	}
	return Evaluation{Data: data, Verified: uan != "" || !history.IsEmpty()}
}

// courtCases returns the case list under either key the court provider uses.
func courtCases(court Payload) []gjson.Result {
	for _, key := range []string{"cases", "court_cases"} {
		if r := court.Get(key); r.IsArray() && len(r.Array()) > 0 {
			return r.Array()
		}
	}
	return nil
}

// EvaluateCourt passes when the search answered and found no cases.
func EvaluateCourt(court Payload) Evaluation {
	cases := courtCases(court)

	pdfName := firstString(court, "pdfName", "pdfname", "pdf_url", "pdfUrl", "data.pdfName")
	total := len(cases)
	if t := court.Get("total"); t.Type == gjson.Number {
		total = int(t.Int())
	}
	caseValues := make([]any, 0, len(cases))
	for _, c := range cases {
		caseValues = append(caseValues, c.Value())
	}
	status := any(0)
	if s := court.Get("status"); s.Exists() && s.Type != gjson.Null {
		status = s.Value()
	}

	data := map[string]any{
		"total":   total,
		"status":  status,
		"pdfName": pdfName,
		"pdfUrl":  pdfName,
		"cases":   caseValues,
	}

	noCases := !court.IsEmpty() && len(cases) == 0
	score := scoreUnproven
	if noCases {
		score = scoreVerified
	}
	return Evaluation{Data: data, Score: IntPtr(score), Verified: noCases}
}

// EvaluateAML passes on any non-empty screening result.
func EvaluateAML(aml Payload) Evaluation {
	data := map[string]any{}
	if s := aml.Get("aml_status"); s.Exists() {
		data["amlStatus"] = s.String()
	}
	if m := aml.Get("matches"); m.IsArray() {
		data["matches"] = len(m.Array())
	}

	verified := !aml.IsEmpty()
	score := scoreUnproven
	if verified {
		score = scoreVerified
	}
	return Evaluation{Data: data, Score: IntPtr(score), Verified: verified}
}

// beneficiaryPaths are probed in order; providers disagree on where the
// account holder's name lives.
var beneficiaryPaths = []string{
	"beneficiaryName",
	"beneficiary_name",
	"result.beneficiaryName",
	"result.beneficiary_name",
	"data.beneficiaryName",
	"data.beneficiary_name",
	"ifscInfo.accountHolderName",
	"name",
}

// BeneficiaryName extracts the account holder name from a bank payload, or "".
func BeneficiaryName(bank Payload) string {
	return firstString(bank, beneficiaryPaths...)
}

// BankVerified accepts the three shapes of "verified" seen from bank providers:
// a verificationStatus string, a numeric status of 1 or 200, or a message text.
func BankVerified(bank Payload) bool {
	if bank.IsEmpty() {
		return false
	}
	if strings.EqualFold(bank.Get("verificationStatus").String(), "VERIFIED") {
		return true
	}
	if s := bank.Get("status"); s.Type == gjson.Number && (s.Num == 1 || s.Num == 200) {
		return true
	}
	return strings.EqualFold(bank.Get("message").String(), "verified")
}

func EvaluateBank(bank Payload) Evaluation {
	verificationStatus := bank.Get("verificationStatus")
	if !verificationStatus.Exists() || verificationStatus.Type == gjson.Null {
		verificationStatus = bank.Get("status")
	}
	data := map[string]any{
		"beneficiaryName":    nilIfEmpty(BeneficiaryName(bank)),
		"nameMatchScore":     bank.Get("nameMatchScore").Value(),
		"nameMatchStatus":    bank.Get("nameMatchStatus").Value(),
		"verificationStatus": verificationStatus.Value(),
	}

	verified := BankVerified(bank)
	score := scoreUnproven
	if verified {
		score = scoreVerified
	}
	return Evaluation{Data: data, Score: IntPtr(score), Verified: verified}
}

func firstString(p Payload, paths ...string) string {
	for _, path := range paths {
		if r := p.Get(path); r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return ""
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
