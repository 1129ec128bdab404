// Package main 课件生成命令行客户端
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"lesson-slides-api/internal/client"
	"lesson-slides-api/pkg/logger"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8000", "slides service base URL")
	topic := flag.String("topic", "", "lesson topic to generate slides for")
	outDir := flag.String("out", "", "output directory, defaults to the current directory")
	timeout := flag.Duration("timeout", 0, "request timeout, 0 waits indefinitely")
	logLevel := flag.String("log-level", "warn", "log level (debug|info|warn|error)")
	flag.Parse()

	logger.Init(*logLevel, "text")

	ctrl := client.NewController(client.Config{
		BaseURL:    *serverURL,
		HTTPClient: &http.Client{Timeout: *timeout},
		Saver:      client.DirSaver{Dir: *outDir},
	})

	// 主题也可作为位置参数传入
	t := *topic
	if t == "" && flag.NArg() > 0 {
		t = strings.Join(flag.Args(), " ")
	}

	// 未指定主题时进入交互模式，逐个主题提交
	if t == "" {
		runPrompt(ctrl)
		return
	}

	if err := ctrl.Submit(context.Background(), t); err != nil {
		// 用户提示已由控制器给出，这里只决定退出码
		var vErr *client.ValidationError
		if errors.As(err, &vErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	fmt.Printf("Saved %s\n", client.ArtifactFilename)
}

// runPrompt 交互式提交循环，空行或 EOF 退出。
// 提交天然串行：下一次读取发生在上一次请求完成之后。
func runPrompt(ctrl *client.Controller) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Lesson topic (empty to quit): ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return
		}

		start := time.Now()
		if err := ctrl.Submit(context.Background(), line); err != nil {
			continue
		}
		fmt.Printf("Saved %s (%s)\n", client.ArtifactFilename, time.Since(start).Round(time.Millisecond))
	}
}
