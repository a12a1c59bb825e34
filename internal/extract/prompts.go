package extract

import "fmt"

// claimSystemPrompt instructs the model to extract only verifiable claims
const claimSystemPrompt = `You are an expert fact-checker assistant. Your task is to analyze text and extract ONLY verifiable factual claims.

EXTRACT ONLY:
- Statistics and numerical data (percentages, amounts, counts)
- Specific dates and timelines
- Financial figures (revenue, market cap, prices, valuations)
- Technical specifications and measurements
- Scientific facts and research findings
- Historical events with specific details

DO NOT EXTRACT:
- Opinions or subjective statements
- Predictions or forecasts
- Vague or general statements
- Marketing language or promotional content
- Quotes expressing views
- Conditional statements (if/then)

For each claim, provide the exact claim as stated, its type, and the key entities involved (companies, people, places).

Return the claims in a structured JSON format.`

// buildClaimPrompt formats one text chunk into the extraction user prompt
func buildClaimPrompt(chunk string) string {
	return fmt.Sprintf(`Analyze the following text and extract all verifiable factual claims.

TEXT TO ANALYZE:
%s

Return your response as a JSON object with this structure:
{
    "claims": [
        {
            "text": "The exact factual claim as stated in the text",
            "type": "statistic|date|financial|technical|scientific|historical",
            "entities": ["list", "of", "key", "entities"]
        }
    ]
}

Only include claims that can be objectively verified. Be thorough but precise. Respond with ONLY the JSON object.`, chunk)
}
