package i

// Logger is the leveled logger used across services and controllers.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
