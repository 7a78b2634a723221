// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"fu-news-go/internal/config"
	"fu-news-go/pkg/events"
	"fu-news-go/pkg/log"

	"github.com/segmentio/kafka-go"
)

// maxAttempts 是单条消息的最大处理次数，超过后提交 offset 放弃该消息。
const maxAttempts = 3

// Producer 将文章事件写入 Kafka，实现了 events.Publisher。
type Producer struct {
	writer *kafka.Writer
}

var _ events.Publisher = (*Producer)(nil)

func brokers(cfg config.KafkaConfig) []string {
	return strings.Split(cfg.Brokers, ",")
}

// NewProducer 初始化 Kafka 生产者。
func NewProducer(cfg config.KafkaConfig) *Producer {
	w := &kafka.Writer{
		Addr:  kafka.TCP(brokers(cfg)...),
		Topic: cfg.Topic,
		// 以文章 ID 为 key 分区，保证同一篇文章的事件有序
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
	}
	log.Info("Kafka 生产者初始化成功")
	return &Producer{writer: w}
}

// Publish 发送一个文章事件到 Kafka。
func (p *Producer) Publish(ctx context.Context, event events.ArticleEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.ArticleID), 10)),
		Value: value,
	})
}

// Close 刷新并关闭底层 writer。
func (p *Producer) Close() error {
	return p.writer.Close()
}

// messageReader 是 consume 依赖的 kafka.Reader 子集。
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// 读取失败后的退避区间，测试中会调小。
var (
	fetchBackoffMin = 500 * time.Millisecond
	fetchBackoffMax = 30 * time.Second
)

// StartConsumer 启动一个 Kafka 消费者来处理文章事件，ctx 取消后退出。
func StartConsumer(ctx context.Context, cfg config.KafkaConfig, handler events.Handler) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers(cfg),
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})

	log.Infof("Kafka 消费者已启动，正在监听主题 '%s'", cfg.Topic)
	consume(ctx, r, handler)

	if err := r.Close(); err != nil {
		log.Errorf("关闭 Kafka 消费者失败: %v", err)
	}
}

// consume 循环拉取消息直到 ctx 取消。读取失败按指数退避后继续，不会退出循环。
func consume(ctx context.Context, r messageReader, handler events.Handler) {
	backoff := fetchBackoffMin
	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Errorf("从 Kafka 读取消息失败，%s 后重试: %v", backoff, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > fetchBackoffMax {
				backoff = fetchBackoffMax
			}
			continue
		}
		backoff = fetchBackoffMin

		log.Debugf("收到 Kafka 消息: partition %d, offset %d", m.Partition, m.Offset)
		handleMessage(ctx, m.Value, handler)

		// 无论成功与否都提交 offset，失败的消息已在 handleMessage 中重试过
		if err := r.CommitMessages(ctx, m); err != nil {
			log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
		}
	}
}

// handleMessage 解析并处理一条消息，失败时原地重试，最多 maxAttempts 次。
func handleMessage(ctx context.Context, value []byte, handler events.Handler) bool {
	var event events.ArticleEvent
	if err := json.Unmarshal(value, &event); err != nil {
		// 消息格式错误，直接丢弃，避免阻塞队列
		log.Errorf("无法解析 Kafka 消息: %v, value: %s", err, string(value))
		return false
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := handler.Handle(ctx, event)
		if err == nil {
			log.Infof("文章事件处理成功: type=%s, articleID=%d", event.Type, event.ArticleID)
			return true
		}
		log.Errorf("处理文章事件失败: articleID=%d, attempt=%d, error: %v", event.ArticleID, attempt, err)
		if ctx.Err() != nil {
			return false
		}
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	log.Errorf("文章事件多次失败(>=%d)，放弃处理: articleID=%d", maxAttempts, event.ArticleID)
	return false
}
