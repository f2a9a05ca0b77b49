package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailydigest/newsagent/internal/agent"
)

// 演示用的命令行客户端：把请求发给 agent，边收边打印各阶段事件

var (
	addr    string
	message string
	stream  bool
)

var rootCmd = &cobra.Command{
	Use:   "client",
	Short: "Talk to the news agent from the command line",
	RunE: func(cmd *cobra.Command, args []string) error {
		if stream {
			return runStream()
		}
		return runOnce()
	},
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "http://localhost:8000", "agent base URL")
	rootCmd.Flags().StringVarP(&message, "message", "m", "Show me latest AI news", "message to send")
	rootCmd.Flags().BoolVar(&stream, "stream", true, "use the streaming endpoint")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requestBody() ([]byte, error) {
	return json.Marshal(map[string]any{
		"message": message,
		"stream":  stream,
	})
}

func runOnce() error {
	body, err := requestBody()
	if err != nil {
		return err
	}

	resp, err := http.Post(addr+"/v1/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	fmt.Println(out.Message)
	return nil
}

func runStream() error {
	body, err := requestBody()
	if err != nil {
		return err
	}

	resp, err := http.Post(addr+"/v1/chat/stream", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var event agent.Response
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
			continue
		}

		switch event.Type {
		case agent.TypeThinking:
			fmt.Printf("[%s] %s\n", event.Thinking.Type, event.Thinking.Content)
		case agent.TypeContent:
			fmt.Print(event.Content)
		case agent.TypeData:
			fmt.Printf("\n(%d articles, categories: %s)\n",
				event.Data.TotalResults, strings.Join(event.Data.Categories, ", "))
		case agent.TypeComplete:
			fmt.Println("\n[complete]")
			return nil
		case agent.TypeError:
			return fmt.Errorf("agent error: %s", event.Content)
		}
	}
	return scanner.Err()
}
