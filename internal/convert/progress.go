package convert

import (
	"bytes"
	"strconv"
	"strings"
)

// maxTailLines bounds the diagnostic lines kept for error messages.
const maxTailLines = 5

// progressParser consumes ffmpeg's stderr. Lines of the form out_time_us=N
// are turned into progress callbacks; other non key=value lines are kept as a
// short diagnostic tail.
type progressParser struct {
	duration float64 // seconds, 0 if unknown
	onUpdate func(progress float64)

	buf  []byte
	tail []string
}

func (p *progressParser) Write(b []byte) (int, error) {
	p.buf = append(p.buf, b...)
	for {
		i := bytes.IndexByte(p.buf, '\n')
		if i < 0 {
			break
		}
		p.line(strings.TrimSpace(string(p.buf[:i])))
		p.buf = p.buf[i+1:]
	}
	return len(b), nil
}

func (p *progressParser) line(line string) {
	if line == "" {
		return
	}
	if strings.HasPrefix(line, ProgressTimePrefix) {
		us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
		if err != nil || p.duration <= 0 || p.onUpdate == nil {
			return
		}
		progress := float64(us) / 1_000_000.0 / p.duration
		if progress > 1.0 {
			progress = 1.0
		}
		if progress < 0 {
			progress = 0
		}
		p.onUpdate(progress)
		return
	}
	if isProgressKey(line) {
		return
	}
	p.tail = append(p.tail, line)
	if len(p.tail) > maxTailLines {
		p.tail = p.tail[len(p.tail)-maxTailLines:]
	}
}

// Tail returns the last diagnostic lines ffmpeg printed.
func (p *progressParser) Tail() string {
	return strings.Join(p.tail, "; ")
}

// isProgressKey reports whether line is a -progress "key=value" record.
func isProgressKey(line string) bool {
	key, _, ok := strings.Cut(line, "=")
	return ok && key != "" && !strings.ContainsAny(key, " :")
}
