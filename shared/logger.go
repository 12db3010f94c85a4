package shared

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_logger.go -package mocks ssb_courier/shared ILogger

// ILogger is satisfied by *log.Logger from charmbracelet/log; components
// depend on the interface so tests can inject a mock.
type ILogger interface {
	Print(msg interface{}, keyvals ...interface{})
	Printf(format string, args ...interface{})
	Debug(msg interface{}, keyvals ...interface{})
	Debugf(format string, args ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Infof(format string, args ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Warnf(format string, args ...interface{})
	Error(msg interface{}, keyvals ...interface{})
	Errorf(format string, args ...interface{})
}
