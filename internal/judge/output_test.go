package judge

import "testing"

func TestExtractJSON_PlainObject(t *testing.T) {
	input := `{"score": 7}`
	if got := ExtractJSON(input); got != input {
		t.Errorf("Expected input unchanged, got %q", got)
	}
}

func TestExtractJSON_Array(t *testing.T) {
	input := `[1, 2, 3]`
	if got := ExtractJSON(input); got != input {
		t.Errorf("Expected input unchanged, got %q", got)
	}
}

func TestExtractJSON_CodeFence(t *testing.T) {
	input := "Here is my verdict:\n```json\n{\"score\": 8}\n```"
	if got := ExtractJSON(input); got != `{"score": 8}` {
		t.Errorf("Expected fenced JSON extracted, got %q", got)
	}
}

func TestExtractJSON_BareFence(t *testing.T) {
	input := "```\n{\"score\": 5}\n```"
	if got := ExtractJSON(input); got != `{"score": 5}` {
		t.Errorf("Expected fenced JSON extracted, got %q", got)
	}
}

func TestExtractJSON_Preamble(t *testing.T) {
	input := `After careful review, my verdict is {"score": 6, "justification": "solid"} as explained.`
	expected := `{"score": 6, "justification": "solid"}`
	if got := ExtractJSON(input); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	input := "I could not produce a verdict."
	if got := ExtractJSON(input); got != input {
		t.Errorf("Expected input returned as-is, got %q", got)
	}
}

func TestDecodeVerdict_ValidConceptScore(t *testing.T) {
	raw := "```json\n" + `{"score": 7, "concepts_found": ["RAG"], "concepts_missing": [], "justification": "uses retrieval"}` + "\n```"

	var verdict ConceptScore
	if err := decodeVerdict(raw, &verdict); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if verdict.Score != 7 {
		t.Errorf("Expected score 7, got %d", verdict.Score)
	}
	if len(verdict.ConceptsFound) != 1 || verdict.ConceptsFound[0] != "RAG" {
		t.Errorf("Unexpected concepts found: %v", verdict.ConceptsFound)
	}
}

func TestDecodeVerdict_OutOfRange(t *testing.T) {
	raw := `{"score": 15, "concepts_found": [], "concepts_missing": [], "justification": "x"}`

	var verdict ConceptScore
	if err := decodeVerdict(raw, &verdict); err == nil {
		t.Fatal("Expected validation error for score 15, got nil")
	}
}

func TestDecodeVerdict_Malformed(t *testing.T) {
	var verdict ConceptScore
	if err := decodeVerdict("not json at all", &verdict); err == nil {
		t.Fatal("Expected unmarshal error, got nil")
	}
}
