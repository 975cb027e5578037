package testing

import (
	"archive/zip"
	"bytes"
	"testing"
)

// SampleSubmission returns a well-organized hackathon project for fixtures.
func SampleSubmission() map[string]string {
	return map[string]string{
		"README.md": `# Research Crew

Multi-agent research assistant built with LangGraph.

## Setup

` + "```bash" + `
pip install -r requirements.txt
cp .env.example .env
python app.py
` + "```" + `
`,
		"requirements.txt": `langgraph
langchain
chromadb
python-dotenv
`,
		".env.example": `OPENAI_API_KEY=
TAVILY_API_KEY=
`,
		"app.py": `from dotenv import load_dotenv

from agents.graph import build_graph

load_dotenv()

if __name__ == "__main__":
    graph = build_graph()
    graph.invoke({"question": "What is new in AI this week?"})
`,
		"agents/graph.py": `from langgraph.graph import StateGraph

from agents.researcher import researcher_node
from agents.writer import writer_node


def build_graph():
    graph = StateGraph(dict)
    graph.add_node("researcher", researcher_node)
    graph.add_node("writer", writer_node)
    graph.add_edge("researcher", "writer")
    graph.set_entry_point("researcher")
    return graph.compile()
`,
		"agents/researcher.py": `def researcher_node(state):
    return {"findings": ["result"]}
`,
		"agents/writer.py": `def writer_node(state):
    return {"report": "done"}
`,
	}
}

// SampleScorecardCSV returns a scorecard CSV with a mix of submission
// kinds, a no-submission row, and a non-group header row.
func SampleScorecardCSV() string {
	return `Group,Project Link,Video Link,Concept Score (10),Difficulty Level (10),Code Quality (10),Total (30),Position,Comments
Section A,,,,,,,,
1,https://github.com/org/subs/tree/Group_1/project,https://youtu.be/a,,,,,,
2,https://github.com/org/subs/tree/main/group2,https://youtu.be/b,,,,,,
3,https://github.com/org/subs/blob/Group_3/final.zip,https://youtu.be/c,,,,,,
4,,,,,,,,
`
}

// SampleSyllabusCSV returns a two-sprint syllabus export.
func SampleSyllabusCSV() string {
	return `Sprint Title,Topics,Description,Outcomes,Tools - Sprint Wise
Sprint 1: Prompting,Prompt engineering,Structured prompts and system prompts,Write effective prompts,OpenAI
Sprint 2: Agents,LangGraph,Multi-agent orchestration,Build agent graphs,LangGraph
`
}

// SampleReferenceCSV returns a scored reference cohort CSV.
func SampleReferenceCSV() string {
	return `Group,Project Link,Video Link,Concept Score (10),Difficulty Level (10),Code Quality (10),Total (30),Position,Comments
1,https://github.com/org/ref/tree/Group_1,,6,5,5,16,3,Simple pipeline
2,https://github.com/org/ref/tree/Group_2,,8,9,8,25,1,Strong multi-agent
3,https://github.com/org/ref/tree/Group_3,,7,8,7,22,2,Good RAG usage
`
}

// BuildZip creates an in-memory zip archive from the given files.
func BuildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s to zip: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s to zip: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finalize zip: %v", err)
	}
	return buf.Bytes()
}
