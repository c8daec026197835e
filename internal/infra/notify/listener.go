package notify

import (
	"context"
	"sync"
	"time"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = time.Second
	maxReconnectInterval = 30 * time.Second
	pingInterval         = time.Minute
)

// Logger интерфейс логгера для слушателя изменений
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Handler обработчик агрегированного уведомления об изменении расписания.
// payloads содержит полезные нагрузки всех NOTIFY, накопленных за окно дебаунса.
type Handler func(ctx context.Context, payloads []string)

// Listener подписывается на PostgreSQL канал через LISTEN/NOTIFY и
// доставляет уведомления обработчику с дебаунсом по заднему фронту:
// шквал изменений в одной транзакции или миграции схлопывается в один вызов.
type Listener struct {
	channel  string
	debounce time.Duration
	handler  Handler
	logger   Logger

	pqListener *pq.Listener

	mu      sync.Mutex
	pending []string
	timer   *time.Timer
}

// NewListener создает слушателя изменений.
// Подключение к каналу происходит в Run.
func NewListener(dsn, channel string, debounce time.Duration, handler Handler, logger Logger) *Listener {
	l := &Listener{
		channel:  channel,
		debounce: debounce,
		handler:  handler,
		logger:   logger,
	}

	l.pqListener = pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			switch ev {
			case pq.ListenerEventConnected:
				logger.Info("notify: connected to channel %q", channel)
			case pq.ListenerEventReconnected:
				logger.Info("notify: reconnected to channel %q", channel)
			case pq.ListenerEventDisconnected:
				logger.Warn("notify: disconnected from channel %q: %v", channel, err)
			case pq.ListenerEventConnectionAttemptFailed:
				logger.Warn("notify: connection attempt failed for channel %q: %v", channel, err)
			}
		})

	return l
}

// Run подписывается на канал и обрабатывает уведомления до отмены контекста.
// Блокирующий вызов, запускается в отдельной горутине.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.pqListener.Listen(l.channel); err != nil {
		return err
	}
	defer l.close()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case n := <-l.pqListener.Notify:
			// nil приходит после переподключения: за время обрыва могли
			// потеряться уведомления, поэтому форсируем обработку
			if n == nil {
				l.enqueue(ctx, "")
				continue
			}
			l.enqueue(ctx, n.Extra)

		case <-ping.C:
			if err := l.pqListener.Ping(); err != nil {
				l.logger.Warn("notify: ping failed: %v", err)
			}
		}
	}
}

// enqueue добавляет payload в очередь и перезапускает таймер дебаунса.
// Обработчик вызывается только после паузы в потоке уведомлений.
func (l *Listener) enqueue(ctx context.Context, payload string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if payload != "" {
		l.pending = append(l.pending, payload)
	}

	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, func() {
		l.flush(ctx)
	})
}

func (l *Listener) flush(ctx context.Context) {
	l.mu.Lock()
	payloads := l.pending
	l.pending = nil
	l.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	l.logger.Info("notify: flushing %d change notifications", len(payloads))
	l.handler(ctx, payloads)
}

func (l *Listener) close() {
	l.mu.Lock()
	if l.timer != nil {
		l.timer.Stop()
	}
	l.mu.Unlock()

	if err := l.pqListener.Close(); err != nil {
		l.logger.Warn("notify: failed to close listener: %v", err)
	}
}
