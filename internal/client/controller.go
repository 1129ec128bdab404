package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"lesson-slides-api/pkg/logger"
)

const (
	// ArtifactFilename 保存课件时使用的固定文件名
	ArtifactFilename = "lesson_presentation.pptx"

	// generatePath 生成接口路径
	generatePath = "/api/generate-slides"

	// maxErrorBodyBytes 错误响应体读取上限
	maxErrorBodyBytes = 4096

	emptyTopicMessage     = "Please enter a lesson topic."
	genericFailureMessage = "Something went wrong while generating the presentation. Please try again."
)

// RequestState 请求状态
type RequestState int32

const (
	// StateIdle 空闲，可以发起新请求
	StateIdle RequestState = iota
	// StateInFlight 请求进行中
	StateInFlight
)

// String 实现 Stringer 接口
func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in_flight"
	default:
		return "unknown"
	}
}

// Config 客户端配置
type Config struct {
	// BaseURL 服务地址，如 http://localhost:8000
	BaseURL string
	// HTTPClient 为 nil 时使用不带超时的默认客户端，
	// 生成耗时由服务端决定，客户端不主动截断
	HTTPClient *http.Client
	// Saver 为 nil 时保存到当前工作目录
	Saver ArtifactSaver
	// Alerter 为 nil 时输出到标准错误
	Alerter Alerter
}

// Controller 课件生成请求控制器。
// 同一时刻至多允许一个进行中的请求，提交的主题在请求完成后保留。
type Controller struct {
	baseURL string
	client  *http.Client
	saver   ArtifactSaver
	alerter Alerter

	state atomic.Int32

	mu    sync.Mutex
	topic string
}

// NewController 创建生成请求控制器
func NewController(cfg Config) *Controller {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var saver ArtifactSaver = cfg.Saver
	if saver == nil {
		saver = DirSaver{}
	}

	var alerter Alerter = cfg.Alerter
	if alerter == nil {
		alerter = ConsoleAlerter{}
	}

	return &Controller{
		baseURL: baseURL,
		client:  httpClient,
		saver:   saver,
		alerter: alerter,
	}
}

// State 返回当前请求状态
func (c *Controller) State() RequestState {
	return RequestState(c.state.Load())
}

// Topic 返回最近一次提交的主题
func (c *Controller) Topic() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topic
}

func (c *Controller) setTopic(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topic = topic
}

// generateRequest 生成接口请求体
type generateRequest struct {
	Topic string `json:"topic"`
}

// Submit 提交课件生成请求并保存返回的 PPTX 文件。
// 主题仅用于空值校验时裁剪，请求体中发送原始输入。
func (c *Controller) Submit(ctx context.Context, topic string) error {
	c.setTopic(topic)

	if strings.TrimSpace(topic) == "" {
		c.alerter.Alert(emptyTopicMessage)
		return &ValidationError{Field: "topic", Reason: "must not be empty"}
	}

	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateInFlight)) {
		return ErrRequestInFlight
	}
	defer c.state.Store(int32(StateIdle))

	data, err := c.requestDeck(ctx, topic)
	if err != nil {
		logger.Error(ctx, "slide generation request failed", err, "topic", topic)
		c.alerter.Alert(genericFailureMessage)
		return err
	}

	if err := c.saver.Save(ArtifactFilename, data); err != nil {
		logger.Error(ctx, "failed to save presentation", err, "filename", ArtifactFilename)
		c.alerter.Alert(genericFailureMessage)
		return err
	}

	logger.Info(ctx, "presentation saved", "filename", ArtifactFilename, "size_bytes", len(data))
	return nil
}

// requestDeck 发起生成请求并读取二进制响应
func (c *Controller) requestDeck(ctx context.Context, topic string) ([]byte, error) {
	body, err := json.Marshal(generateRequest{Topic: topic})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Message:    readErrorBody(resp.Body),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return data, nil
}

// readErrorBody 读取错误响应体用于诊断日志，超长截断
func readErrorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
