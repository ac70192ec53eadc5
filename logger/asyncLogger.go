package logger

import (
	"log"

	"gorm.io/gorm"

	log_model "smart-parking/models/log"
	"smart-parking/types"
)

// AsyncLogger drains request-log entries to the database off the request
// path. Handlers push entries into a buffered channel; a single goroutine
// started with ProcessLog writes them out.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
	}
}

func (logger *AsyncLogger) ProcessLog() {
	log.Println("Starting asynchronous logger...")

	for logEntry := range logger.channel {
		dbLog := log_model.Log{
			Method:          logEntry.Method,
			URL:             logEntry.URL,
			RequestBody:     logEntry.RequestBody,
			ResponseBody:    logEntry.ResponseBody,
			RequestHeaders:  logEntry.RequestHeaders,
			ResponseHeaders: logEntry.ResponseHeaders,
			StatusCode:      logEntry.StatusCode,
			CreatedAt:       logEntry.CreatedAt,
		}

		if err := logger.db.Create(&dbLog).Error; err != nil {
			log.Printf("Failed to insert log entry: %v", err)
		}
	}
}

// Log pushes a log entry into the channel. A nil-db logger (tests,
// memory mode) drops entries instead of blocking.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	if logger.db == nil {
		return
	}
	select {
	case logger.channel <- entry:
	default:
		log.Println("Async log channel full, dropping entry")
	}
}
