package prompt

import (
	"strings"
	"testing"

	"github.com/loopkit/loopchat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAgent() *domain.Agent {
	return &domain.Agent{ID: "ag-1", Name: "Acme Assistant", BusinessDomain: "furniture retail"}
}

func TestAssemble_NilPersonaOmitsPersonaSections(t *testing.T) {
	got := Assemble(testAgent(), nil, nil)

	assert.Contains(t, got, "You are Acme Assistant, a helpful assistant for furniture retail.")
	assert.Contains(t, got, "## Lead Capture Guidelines")
	assert.NotContains(t, got, "Greet new visitors with")
	assert.NotContains(t, got, "Never do the following")
	assert.NotContains(t, got, "Escalation rules")
	assert.NotContains(t, got, knowledgeHeading)
}

func TestAssemble_FullPersonaSectionOrder(t *testing.T) {
	persona := &domain.Persona{
		Name:            "Maya",
		Role:            "a sales specialist",
		Tone:            domain.ToneFriendly,
		StyleNotes:      "Prefer short sentences.",
		DoNotDo:         []string{"quote prices", "promise delivery dates"},
		GreetingScript:  "Welcome to Acme!",
		FallbackPolicy:  domain.FallbackEscalate,
		EscalationRules: "Escalate billing disputes immediately.",
	}
	chunks := []domain.KnowledgeChunk{{Content: "We are open 9-5 on weekdays."}}

	got := Assemble(testAgent(), persona, chunks)

	wantInOrder := []string{
		"You are Maya, a sales specialist.",
		"warm, friendly, and approachable",
		"Prefer short sentences.",
		`Greet new visitors with: "Welcome to Acme!"`,
		"Never do the following:\n- quote prices\n- promise delivery dates",
		"offer to escalate the conversation to a human teammate",
		"Escalation rules: Escalate billing disputes immediately.",
		"## Lead Capture Guidelines",
		knowledgeHeading,
		"We are open 9-5 on weekdays.",
	}

	last := -1
	for _, want := range wantInOrder {
		idx := strings.Index(got, want)
		require.GreaterOrEqual(t, idx, 0, "missing section: %q", want)
		assert.Greater(t, idx, last, "section out of order: %q", want)
		last = idx
	}
}

func TestAssemble_UnrecognizedToneFallsBackToProfessional(t *testing.T) {
	persona := &domain.Persona{Name: "Max", Tone: "sassy"}
	got := Assemble(testAgent(), persona, nil)
	assert.Contains(t, got, toneDirectives[domain.ToneProfessional])
}

func TestAssemble_UnknownFallbackPolicyOmitted(t *testing.T) {
	persona := &domain.Persona{Name: "Max", FallbackPolicy: "panic"}
	got := Assemble(testAgent(), persona, nil)
	assert.NotContains(t, got, "If you cannot help with a request")
}

func TestAssemble_KnowledgeHeadingOnlyWithChunks(t *testing.T) {
	agent := testAgent()
	assert.NotContains(t, Assemble(agent, nil, nil), knowledgeHeading)
	assert.Contains(t, Assemble(agent, nil, []domain.KnowledgeChunk{{Content: "fact"}}), knowledgeHeading)
}

func TestAssemble_Deterministic(t *testing.T) {
	persona := &domain.Persona{Name: "Maya", Tone: domain.ToneCasual, FallbackPolicy: domain.FallbackRetry}
	agent := testAgent()
	assert.Equal(t, Assemble(agent, persona, nil), Assemble(agent, persona, nil))
}

func TestAssemble_NilAgent(t *testing.T) {
	got := Assemble(nil, nil, nil)
	assert.Contains(t, got, "You are an AI assistant, a helpful assistant.")
}
