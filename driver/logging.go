package driver

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const loggerName = "hush.driver"

// ConfigureLogging sends log output to stderr. Verbosity 0 keeps notices and above;
// every step up enables the next level down.
func ConfigureLogging(verbosity int) {
	commonlog.Configure(verbosity, nil)
}

func logger() commonlog.Logger {
	return commonlog.GetLogger(loggerName)
}
