// Package prompt builds the system instruction for a response pass.
package prompt

import (
	"fmt"
	"strings"

	"github.com/loopkit/loopchat/internal/domain"
)

var toneDirectives = map[string]string{
	domain.ToneProfessional: "Maintain a professional and courteous tone in every reply.",
	domain.ToneFriendly:     "Keep the tone warm, friendly, and approachable.",
	domain.ToneCasual:       "Keep the tone relaxed and conversational.",
	domain.ToneFormal:       "Use formal language and avoid colloquialisms.",
}

var fallbackDirectives = map[string]string{
	domain.FallbackApologize: "If you cannot help with a request, apologize and say so honestly.",
	domain.FallbackEscalate:  "If you cannot help with a request, offer to escalate the conversation to a human teammate.",
	domain.FallbackRetry:     "If you cannot help with a request, ask a clarifying question and try again.",
	domain.FallbackTransfer:  "If you cannot help with a request, offer to transfer the visitor to the right department.",
}

const leadCaptureGuidelines = `## Lead Capture Guidelines
If the visitor shares an email address or phone number, acknowledge it naturally and continue the conversation.
At most once per conversation, and only when it fits the flow, gently ask whether the visitor would like to leave an email or phone number for follow-up.
Never be pushy, and never ask again once the visitor has declined or already shared contact details.`

const knowledgeHeading = "## Relevant Knowledge"

// Assemble composes the system instruction from agent configuration, an
// optional persona, and retrieved knowledge chunks. It is deterministic:
// sections appear in a fixed order and any section whose source field is
// absent is omitted entirely.
func Assemble(agent *domain.Agent, persona *domain.Persona, chunks []domain.KnowledgeChunk) string {
	var sections []string

	sections = append(sections, identityLine(agent, persona))

	if persona != nil {
		if persona.Tone != "" {
			directive, ok := toneDirectives[persona.Tone]
			if !ok {
				directive = toneDirectives[domain.ToneProfessional]
			}
			sections = append(sections, directive)
		}
		if persona.StyleNotes != "" {
			sections = append(sections, persona.StyleNotes)
		}
		if persona.GreetingScript != "" {
			sections = append(sections, fmt.Sprintf("Greet new visitors with: %q", persona.GreetingScript))
		}
		if len(persona.DoNotDo) > 0 {
			var b strings.Builder
			b.WriteString("Never do the following:")
			for _, item := range persona.DoNotDo {
				b.WriteString("\n- ")
				b.WriteString(item)
			}
			sections = append(sections, b.String())
		}
		if directive, ok := fallbackDirectives[persona.FallbackPolicy]; ok {
			sections = append(sections, directive)
		}
		if persona.EscalationRules != "" {
			sections = append(sections, "Escalation rules: "+persona.EscalationRules)
		}
	}

	sections = append(sections, leadCaptureGuidelines)

	if len(chunks) > 0 {
		var b strings.Builder
		b.WriteString(knowledgeHeading)
		b.WriteString("\nUse the following knowledge to answer when it is relevant:")
		for _, chunk := range chunks {
			b.WriteString("\n\n")
			b.WriteString(chunk.Content)
		}
		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n\n")
}

func identityLine(agent *domain.Agent, persona *domain.Persona) string {
	if persona != nil && persona.Name != "" {
		if persona.Role != "" {
			return fmt.Sprintf("You are %s, %s.", persona.Name, persona.Role)
		}
		return fmt.Sprintf("You are %s.", persona.Name)
	}

	name := "an AI assistant"
	if agent != nil && agent.Name != "" {
		name = agent.Name
	}
	if agent != nil && agent.BusinessDomain != "" {
		return fmt.Sprintf("You are %s, a helpful assistant for %s.", name, agent.BusinessDomain)
	}
	return fmt.Sprintf("You are %s, a helpful assistant.", name)
}
