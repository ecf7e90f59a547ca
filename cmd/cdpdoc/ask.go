package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/cdpdoc/engine"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Engine.GenerateResponse(deps.Ctx, c.Question))
	return nil
}

// Run executes the live command.
func (c *LiveCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Navigator.Answer(deps.Ctx, c.Question))
	return nil
}

// Run executes the chat command. Each line read is a question; an empty
// line is skipped and "exit" or "quit" ends the chat.
func (c *ChatCmd) Run(deps *Dependencies) error {
	chat := engine.NewChat(deps.Engine)
	scanner := bufio.NewScanner(deps.Stdin)

	fmt.Fprintln(deps.Stdout, "Ask me anything about CDPs. Type 'exit' to quit.")
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(question) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		fmt.Fprintf(deps.Stdout, "%s\n\n", chat.Ask(deps.Ctx, question))
	}
	fmt.Fprintln(deps.Stdout)
	return scanner.Err()
}
