package logger

import (
	"encoding/json"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// reserved keys already rendered in the console line prefix
var linePrefixKeys = []string{"msg", "level", "ts", "caller", "logger"} //nolint:gochecknoglobals // static lookup

// devEncoder renders human-readable console output: a colored level in the
// entry line, structured fields pretty-printed as indented JSON below it.
type devEncoder struct {
	zapcore.Encoder
	lineEncoder  zapcore.Encoder
	fieldEncoder zapcore.Encoder
	pool         buffer.Pool
}

func newDevEncoder(encoderConfig zapcore.EncoderConfig) zapcore.Encoder {
	lineEnc := zapcore.NewConsoleEncoder(encoderConfig)
	return &devEncoder{
		Encoder:      lineEnc,
		lineEncoder:  lineEnc,
		fieldEncoder: zapcore.NewJSONEncoder(encoderConfig),
		pool:         buffer.NewPool(),
	}
}

func (e *devEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	lineBuf, err := e.lineEncoder.EncodeEntry(entry, nil)
	if err != nil {
		return nil, err
	}

	line := colorizeLevel(strings.TrimRight(lineBuf.String(), "\n"), entry.Level)

	if len(fields) > 0 {
		fieldBuf, encErr := e.fieldEncoder.EncodeEntry(entry, fields)
		if encErr != nil {
			return nil, encErr
		}
		line = appendFields(line, fieldBuf)
	}

	buf := e.pool.Get()
	buf.AppendString(line)
	buf.AppendString("\n")
	return buf, nil
}

// appendFields attaches the structured fields below the entry line as
// indented JSON, falling back to the raw encoding when the payload does not
// parse.
func appendFields(line string, fieldBuf *buffer.Buffer) string {
	var payload map[string]any
	if err := json.Unmarshal(fieldBuf.Bytes(), &payload); err != nil {
		return line + " " + fieldBuf.String()
	}

	for _, key := range linePrefixKeys {
		delete(payload, key)
	}
	if len(payload) == 0 {
		return line
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return line + " " + fieldBuf.String()
	}
	return line + "\n" + string(pretty)
}

func colorizeLevel(line string, level zapcore.Level) string {
	var paint func(a ...any) string

	switch level {
	case zapcore.DebugLevel:
		paint = color.New(color.FgCyan).SprintFunc()
	case zapcore.InfoLevel:
		paint = color.New(color.FgGreen).SprintFunc()
	case zapcore.WarnLevel:
		paint = color.New(color.FgYellow).SprintFunc()
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		paint = color.New(color.FgRed, color.Bold).SprintFunc()
	default:
		return line
	}

	for _, name := range []string{level.CapitalString(), level.String()} {
		if strings.Contains(line, name) {
			return strings.Replace(line, name, paint(name), 1)
		}
	}
	return line
}
