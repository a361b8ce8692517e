package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"schedsync/internal/core/domain"
	"schedsync/internal/testutil"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "raw object", input: `{"tasks": []}`, expected: `{"tasks": []}`},
		{name: "leading prose", input: `Here you go: {"tasks": [{"name": "Run"}]} enjoy`, expected: `{"tasks": [{"name": "Run"}]}`},
		{name: "json fence", input: "```json\n{\"tasks\": []}\n```", expected: `{"tasks": []}`},
		{name: "plain fence", input: "```\n{\"tasks\": []}\n```", expected: `{"tasks": []}`},
		{name: "array", input: `[{"id": 1}, {"id": 2}]`, expected: `[{"id": 1}, {"id": 2}]`},
		{name: "no json", input: "sorry", expected: "sorry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, extractJSON(tt.input))
		})
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient("ollama", "llama3", "", "")
	require.NoError(t, err)
	require.IsType(t, &OllamaClient{}, client)

	client, err = NewClient("OpenAI", "gpt-4o-mini", "", "key")
	require.NoError(t, err)
	require.IsType(t, &OpenAIClient{}, client)

	_, err = NewClient("openai", " ", "", "key")
	require.Error(t, err)

	_, err = NewClient("unknown", "model", "", "")
	require.Error(t, err)
}

func chatCompletionServer(t *testing.T, content string, seen *[]map[string]any) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if seen != nil {
			*seen = append(*seen, body)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1767225600,
			"model":   body["model"],
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(server.Close)

	return server
}

func TestOpenAIClient_ChatJSON(t *testing.T) {
	var seen []map[string]any
	server := chatCompletionServer(t, "```json\n{\"tasks\":[{\"name\":\"Run\",\"time\":\"07:00\",\"duration\":30}]}\n```", &seen)

	client, err := NewOpenAIClient("test-model", server.URL+"/v1", "test-key")
	require.NoError(t, err)

	var reply proposal
	err = client.ChatJSON(context.Background(), []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "hi"}}, &reply)
	require.NoError(t, err)
	require.Equal(t, []proposedTask{{Name: "Run", Time: "07:00", Duration: 30}}, reply.Tasks)

	require.Len(t, seen, 1)
	require.Equal(t, "test-model", seen[0]["model"])
	require.Len(t, seen[0]["messages"], 2)
}

func TestGenerator_GenerateParsesProposal(t *testing.T) {
	server := chatCompletionServer(t, `{"tasks":[{"name":" Breakfast ","time":"07:30","duration":30},{"name":"Deep work","time":"09:00","duration":120}]}`, nil)

	client, err := NewOpenAIClient("test-model", server.URL+"/v1", "test-key")
	require.NoError(t, err)

	tasks, err := NewGenerator(client).Generate(context.Background(), domain.UserProfile{
		Profession: "engineer",
		WakeTime:   testutil.Clock("07:00"),
		SleepTime:  testutil.Clock("23:00"),
		WorkStart:  testutil.Clock("09:00"),
		WorkEnd:    testutil.Clock("17:00"),
		Hobbies:    []string{"running"},
	})
	require.NoError(t, err)
	require.Equal(t, domain.TaskList{
		{Name: "Breakfast", Time: testutil.Clock("07:30"), Duration: 30},
		{Name: "Deep work", Time: testutil.Clock("09:00"), Duration: 120},
	}, tasks)
}

type stubClient struct {
	reply string
	err   error
	got   []Message
}

func (s *stubClient) Chat(_ context.Context, messages []Message) (string, error) {
	s.got = messages
	return s.reply, s.err
}

func (s *stubClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := s.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeReply(content, result)
}

func TestGenerator_RejectsMalformedTime(t *testing.T) {
	client := &stubClient{reply: `{"tasks":[{"name":"Nap","time":"25:00","duration":20}]}`}

	_, err := NewGenerator(client).Generate(context.Background(), domain.UserProfile{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Nap")
}

func TestGenerator_RejectsEmptyProposal(t *testing.T) {
	_, err := NewGenerator(&stubClient{reply: `{"tasks":[]}`}).Generate(context.Background(), domain.UserProfile{})
	require.Error(t, err)
}

func TestGenerator_PropagatesClientError(t *testing.T) {
	boom := errors.New("rate limited")
	_, err := NewGenerator(&stubClient{err: boom}).Generate(context.Background(), domain.UserProfile{})
	require.ErrorIs(t, err, boom)
}

func TestUserPrompt_IncludesProfile(t *testing.T) {
	client := &stubClient{reply: `{"tasks":[{"name":"Read","time":"21:00","duration":30}]}`}

	_, err := NewGenerator(client).Generate(context.Background(), domain.UserProfile{
		WakeTime:  testutil.Clock("06:30"),
		SleepTime: testutil.Clock("22:00"),
		WorkStart: testutil.Clock("08:00"),
		WorkEnd:   testutil.Clock("16:00"),
		Hobbies:   []string{"chess", "guitar"},
	})
	require.NoError(t, err)
	require.Len(t, client.got, 2)

	prompt := client.got[1].Content
	require.Contains(t, prompt, "Profession: not specified")
	require.Contains(t, prompt, "Wake time: 06:30")
	require.Contains(t, prompt, "Work hours: 08:00 to 16:00")
	require.Contains(t, prompt, "Hobbies: chess, guitar")
}
