package service

import (
	"fmt"
	"sort"
	"strings"

	"parkappeal-backend/models"
	"parkappeal-backend/regulations"
	"parkappeal-backend/strategy"
)

// Request assembly. These functions deterministically render the structured
// text requests handed to the generation model; they only format known,
// optional data and cannot fail. Facts and evidence render in sorted key
// order, truthy entries only.

// BuildAnglePrompt renders the generation request for a single appeal angle
func BuildAnglePrompt(
	facts models.CitationFacts,
	location *regulations.CombinedInfo,
	angle *strategy.AppealAngle,
	evidence models.EvidenceSet,
) string {
	var b strings.Builder

	b.WriteString("You are an expert legal assistant specializing in parking citation appeals.\n")
	b.WriteString("Your task is to write a compelling, professional, and legally sound appeal letter.\n\n")
	fmt.Fprintf(&b, "APPEAL STRATEGY: %s\n", angle.Name)
	fmt.Fprintf(&b, "STRATEGY DESCRIPTION: %s\n\n", angle.Description)

	b.WriteString("CITATION DETAILS:\n")
	writeDetailLines(&b, facts)

	b.WriteString("\nJURISDICTION INFORMATION:\n")
	writeJurisdiction(&b, location)

	b.WriteString("\nAVAILABLE EVIDENCE:\n")
	writeDetailLines(&b, evidence)

	b.WriteString("\nKEY POINTS FOR THIS APPEAL ANGLE:\n")
	for _, point := range angle.StrengthIndicators {
		fmt.Fprintf(&b, "- %s\n", point)
	}

	fmt.Fprintf(&b, `
REQUIRED STRUCTURE:
1. Opening: Brief, professional greeting and statement of purpose
2. Citation Information: Reference the citation number, date, location
3. Main Argument: Present the %s case clearly and persuasively
4. Supporting Evidence: Reference all available evidence that supports this angle
5. Legal/Regulatory Basis: Cite relevant regulations from the jurisdiction
6. Conclusion: Respectful request for dismissal or reduction
7. Closing: Professional sign-off

TONE REQUIREMENTS:
- Professional and respectful
- Factual and objective
- Confident but not aggressive
- Empathetic where appropriate
- Legally informed

IMPORTANT GUIDELINES:
- Do NOT fabricate facts or evidence not provided
- Cite specific regulations when applicable
- Keep the letter concise (300-500 words ideal)
- Use formal business letter format
- Be specific about dates, times, and locations
- Request specific relief (dismissal or reduction of fine)

Generate the appeal letter now:`, angle.Name)

	return b.String()
}

// BuildAnglePrompts renders one request per angle key, keyed by the angle's
// display name. Unknown keys are skipped. A duplicate angle in the input
// overwrites the earlier entry; callers wanting one request per angle should
// de-duplicate the key list first.
func BuildAnglePrompts(
	facts models.CitationFacts,
	location *regulations.CombinedInfo,
	angleKeys []string,
	evidence models.EvidenceSet,
) map[string]string {
	prompts := make(map[string]string)

	for _, key := range angleKeys {
		if angle := strategy.Angle(key); angle != nil {
			prompts[angle.Name] = BuildAnglePrompt(facts, location, angle, evidence)
		}
	}

	return prompts
}

// BuildComprehensivePrompt renders one unified request that asks the model to
// weave every resolvable angle into a single cohesive letter
func BuildComprehensivePrompt(
	facts models.CitationFacts,
	location *regulations.CombinedInfo,
	angleKeys []string,
	evidence models.EvidenceSet,
) string {
	var b strings.Builder

	b.WriteString("You are an expert legal assistant specializing in parking citation appeals.\n")
	b.WriteString("Write a single, comprehensive appeal letter that strategically incorporates multiple strong arguments.\n\n")

	b.WriteString("CITATION DETAILS:\n")
	b.WriteString(formatDetails(facts))

	b.WriteString("\nJURISDICTION:\n")
	writeJurisdiction(&b, location)

	b.WriteString("\nAVAILABLE EVIDENCE:\n")
	b.WriteString(formatDetails(evidence))

	b.WriteString("\nAPPEAL ANGLES TO INCORPORATE:\n")
	for _, key := range angleKeys {
		angle := strategy.Angle(key)
		if angle == nil {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", angle.Name)
		fmt.Fprintf(&b, "Description: %s\n", angle.Description)
		b.WriteString("Key points:\n")
		indicators := angle.StrengthIndicators
		if len(indicators) > 3 {
			indicators = indicators[:3]
		}
		for _, point := range indicators {
			fmt.Fprintf(&b, "  - %s\n", point)
		}
	}

	b.WriteString(`
Create a single, unified appeal letter that:
1. Opens professionally with citation reference
2. Presents the strongest arguments from the available angles
3. Weaves multiple points together coherently (don't list angles separately)
4. Cites relevant regulations and laws
5. References all supporting evidence naturally
6. Maintains a respectful, professional tone throughout
7. Concludes with a clear request for relief

The letter should read as a cohesive whole, not as separate sections for each angle.
Aim for 400-600 words. Use formal business letter format.`)

	return b.String()
}

// BuildAnalysisPrompt renders the request for an overall appeal strength
// assessment of the case
func BuildAnalysisPrompt(
	facts models.CitationFacts,
	location *regulations.CombinedInfo,
	evidence models.EvidenceSet,
) string {
	var b strings.Builder

	b.WriteString("You are a parking citation appeal expert. Analyze this situation and provide\n")
	b.WriteString("a brief assessment of the likelihood of a successful appeal.\n\n")

	b.WriteString("CITATION DETAILS:\n")
	b.WriteString(formatDetails(facts))

	b.WriteString("\nJURISDICTION:\n")
	writeJurisdiction(&b, location)

	b.WriteString("\nAVAILABLE EVIDENCE:\n")
	b.WriteString(formatDetails(evidence))

	b.WriteString(`
Provide a concise analysis including:
1. Overall appeal strength (Strong/Moderate/Weak)
2. Best appeal angles to pursue (top 2-3)
3. Key factors supporting the appeal
4. Potential weaknesses to address
5. Recommended next steps

Keep the analysis under 300 words.`)

	return b.String()
}

// BuildFollowUpPrompt renders the request for additional intake questions
// tailored to one appeal angle
func BuildFollowUpPrompt(
	facts models.CitationFacts,
	angle *strategy.AppealAngle,
) string {
	var b strings.Builder

	b.WriteString("Based on this parking citation appeal case, suggest 3-5 specific questions\n")
	b.WriteString("that would help gather additional information to strengthen the appeal.\n\n")

	fmt.Fprintf(&b, "APPEAL ANGLE: %s\n", angle.Name)
	b.WriteString("CURRENT INFORMATION:\n")
	b.WriteString(formatDetails(facts))

	b.WriteString("\nSTANDARD QUESTIONS FOR THIS ANGLE:\n")
	for _, question := range angle.KeyQuestions {
		fmt.Fprintf(&b, "- %s\n", question)
	}

	b.WriteString(`
Generate additional specific questions that:
1. Are directly relevant to this specific situation
2. Would uncover helpful evidence or details
3. Are clear and easy to answer
4. Haven't already been covered

Format: Return only the questions, one per line, numbered.`)

	return b.String()
}

// writeJurisdiction renders the state and city blocks of a request
func writeJurisdiction(b *strings.Builder, location *regulations.CombinedInfo) {
	if location == nil {
		return
	}

	if state := location.State; state != nil {
		fmt.Fprintf(b, "State: %s\n", state.Name)
		fmt.Fprintf(b, "Appeal Deadline: %d days from citation\n", state.AppealDeadlineDays)
		if len(state.CommonDefenses) > 0 {
			b.WriteString("\nRelevant State Regulations:\n")
			for _, defense := range state.CommonDefenses {
				fmt.Fprintf(b, "- %s\n", defense)
			}
		}
	}

	if city := location.City; city != nil {
		b.WriteString("\nCity-Specific Information:\n")
		for _, rule := range city.SpecificRules {
			fmt.Fprintf(b, "- %s\n", rule)
		}
		fmt.Fprintf(b, "Online Appeal Available: %t\n", city.OnlineAppeal)
	}
}

// writeDetailLines renders the truthy entries of an open map as bullet lines
func writeDetailLines(b *strings.Builder, details map[string]interface{}) {
	for _, key := range sortedTruthyKeys(details) {
		fmt.Fprintf(b, "- %s: %v\n", titleCase(key), details[key])
	}
}

// formatDetails renders an open map as a block, or "None provided"
func formatDetails(details map[string]interface{}) string {
	keys := sortedTruthyKeys(details)
	if len(keys) == 0 {
		return "None provided\n"
	}

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "- %s: %v\n", titleCase(key), details[key])
	}
	return b.String()
}

func sortedTruthyKeys(details map[string]interface{}) []string {
	keys := make([]string, 0, len(details))
	for key, value := range details {
		if models.Truthy(value) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// titleCase turns a snake_case key into a display label: underscores become
// spaces and each word is capitalized ("citation_number" -> "Citation Number")
func titleCase(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
