package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeAnswerer records the questions the chat loop forwards to the pipeline.
type fakeAnswerer struct {
	questions []string
	err       error
}

func (f *fakeAnswerer) Ask(_ context.Context, question string) (string, error) {
	f.questions = append(f.questions, question)
	if f.err != nil {
		return "", f.err
	}
	return "resposta", nil
}

func TestIsExitCommand(t *testing.T) {
	for _, input := range []string{"sair", "SAIR", "Sair", "exit", "EXIT", "quit", "q", "Q", "  sair  "} {
		assert.True(t, isExitCommand(input), "expected %q to end the session", input)
	}
	for _, input := range []string{"", "pergunta", "sai", "quitx", "q u i t"} {
		assert.False(t, isExitCommand(input), "expected %q to not end the session", input)
	}
}

func TestChatLoopExitWordSkipsPipeline(t *testing.T) {
	rag := &fakeAnswerer{}
	runChatLoop(context.Background(), rag, strings.NewReader("SAIR\n"))
	assert.Empty(t, rag.questions)
}

func TestChatLoopEmptyInputReprompts(t *testing.T) {
	rag := &fakeAnswerer{}
	runChatLoop(context.Background(), rag, strings.NewReader("\n   \nsair\n"))
	assert.Empty(t, rag.questions)
}

func TestChatLoopForwardsQuestions(t *testing.T) {
	rag := &fakeAnswerer{}
	runChatLoop(context.Background(), rag, strings.NewReader("qual o prazo?\nexit\n"))
	assert.Equal(t, []string{"qual o prazo?"}, rag.questions)
}

func TestChatLoopContinuesAfterError(t *testing.T) {
	rag := &fakeAnswerer{err: errors.New("remote call failed")}
	runChatLoop(context.Background(), rag, strings.NewReader("primeira\nsegunda\nq\n"))
	// Both questions were attempted despite the first failing.
	assert.Equal(t, []string{"primeira", "segunda"}, rag.questions)
}

func TestChatLoopEndsOnEOF(t *testing.T) {
	rag := &fakeAnswerer{}
	runChatLoop(context.Background(), rag, strings.NewReader(""))
	assert.Empty(t, rag.questions)
}

func TestChatLoopEndsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rag := &fakeAnswerer{}
	// Reader never yields a line; the cancelled context must end the loop.
	runChatLoop(ctx, rag, strings.NewReader(""))
	assert.Empty(t, rag.questions)
}
