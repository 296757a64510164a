package desktop

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// LogNotifier shows notices on the terminal through the logger.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Notify(notice entities.Notice) {
	entry := logger.WithField("notice", string(notice.Level))
	if notice.Level == entities.NoticeError {
		entry.Error(notice.Message)
		return
	}
	entry.Info(notice.Message)
}
