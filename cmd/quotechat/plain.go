package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"quotechat/pkg/api"
	"quotechat/pkg/chat"
)

const maxLineBytes = 1 << 20

// runPlain reads one message per line and prints each reply. It stops at
// EOF or as soon as ctx is cancelled, even while waiting for input, and
// returns the transcript.
func runPlain(ctx context.Context, client api.Chatter, in io.Reader, out io.Writer) ([]chat.Message, error) {
	ctrl := chat.NewController(client)
	lines, readErr := scanLines(ctx, in)

	for {
		select {
		case <-ctx.Done():
			return ctrl.Messages(), nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return ctrl.Messages(), fmt.Errorf("read input: %w", err)
				}
				return ctrl.Messages(), nil
			}
			if ctx.Err() != nil {
				return ctrl.Messages(), nil
			}
			if !ctrl.Send(ctx, line) {
				continue
			}
			msgs := ctrl.Messages()
			printReply(out, msgs[len(msgs)-1])
		}
	}
}

// scanLines feeds lines from in until EOF or cancellation. The error
// channel receives exactly one value before lines is closed. A read blocked
// on in is abandoned when ctx ends.
func scanLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		var err error
		defer func() {
			readErr <- err
			close(lines)
		}()

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		err = scanner.Err()
	}()
	return lines, readErr
}

func printReply(out io.Writer, msg chat.Message) {
	if msg.IsError() {
		fmt.Fprintf(out, "Error: %s\n%s\n\n", msg.Content, chat.ErrorHint)
		return
	}
	fmt.Fprintln(out, msg.Content)
	if len(msg.ThinkingSteps) > 0 {
		fmt.Fprintln(out, "Thinking:")
		for _, step := range msg.ThinkingSteps {
			fmt.Fprintf(out, "  - %s\n", step)
		}
	}
	if msg.QuoteMD != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.TrimRight(msg.QuoteMD, "\n"))
	}
	if msg.CurrentIntent != "" {
		fmt.Fprintf(out, "Intent: %s\n", msg.CurrentIntent)
	}
	fmt.Fprintln(out)
}
