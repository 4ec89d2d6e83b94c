package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/flybeeper/gps-checker/internal/metrics"
	"github.com/flybeeper/gps-checker/internal/models"
	"github.com/flybeeper/gps-checker/pkg/utils"
)

// DegreeMark знак градуса в журнале: U+309C, а не ASCII-совместимый "°"
const DegreeMark = "゜"

// linePattern HH:MM:SS [N|S]DD゜MM'SS.ss" [E|W]DDD゜MM'SS.ss"
// Совпадение проверяется только с начала строки, хвост игнорируется.
var linePattern = regexp.MustCompile(
	`^(\d{2}:\d{2}:\d{2})\s([NS])(\d+)` + DegreeMark + `(\d+)'([\d.]+)"\s([EW])(\d+)` + DegreeMark + `(\d+)'([\d.]+)"`,
)

// ErrNoValidData ни одна строка не распознана как точка GPS
var ErrNoValidData = errors.New("no valid GPS data")

// ParseError строка не соответствует формату журнала
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot interpret as GPS data: %q: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("cannot interpret as GPS data: %q", e.Line)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Options настройки разбора
type Options struct {
	// SignedHemispheres применяет знак для S и W. По умолчанию выключено:
	// журналы записаны в северо-восточном полушарии и знак не учитывается.
	SignedHemispheres bool
}

// Stats статистика разбора журнала
type Stats struct {
	Lines   int `json:"lines"`
	Parsed  int `json:"parsed"`
	Dropped int `json:"dropped"`
}

// Result результат разбора журнала
type Result struct {
	Fixes []models.Fix
	Stats Stats
}

// Parser парсер журнала GPS
type Parser struct {
	logger  *utils.Logger
	options Options
}

// NewParser создает новый парсер журнала GPS
func NewParser(logger *utils.Logger, options Options) *Parser {
	return &Parser{
		logger:  logger,
		options: options,
	}
}

// ParseLine разбирает одну строку журнала без учета знака полушарий
func ParseLine(line string) (models.Fix, error) {
	return parseLine(line, false)
}

// ParseLine разбирает одну строку журнала
func (p *Parser) ParseLine(line string) (models.Fix, error) {
	return parseLine(line, p.options.SignedHemispheres)
}

func parseLine(line string, signed bool) (models.Fix, error) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return models.Fix{}, &ParseError{Line: line}
	}

	tod, err := models.ParseTimeOfDay(m[1])
	if err != nil {
		return models.Fix{}, &ParseError{Line: line, Err: err}
	}

	lat, err := dmsToDecimal(m[3], m[4], m[5])
	if err != nil {
		return models.Fix{}, &ParseError{Line: line, Err: fmt.Errorf("latitude: %w", err)}
	}

	lon, err := dmsToDecimal(m[7], m[8], m[9])
	if err != nil {
		return models.Fix{}, &ParseError{Line: line, Err: fmt.Errorf("longitude: %w", err)}
	}

	return models.Fix{
		Time: tod,
		GeoPoint: models.GeoPoint{
			Latitude:  applyHemisphere(lat, m[2], signed),
			Longitude: applyHemisphere(lon, m[6], signed),
		},
	}, nil
}

// dmsToDecimal переводит градусы, минуты и секунды в десятичные градусы
func dmsToDecimal(degrees, minutes, seconds string) (float64, error) {
	d, err := strconv.ParseFloat(degrees, 64)
	if err != nil {
		return 0, fmt.Errorf("degrees %q: %w", degrees, err)
	}
	m, err := strconv.ParseFloat(minutes, 64)
	if err != nil {
		return 0, fmt.Errorf("minutes %q: %w", minutes, err)
	}
	s, err := strconv.ParseFloat(seconds, 64)
	if err != nil {
		return 0, fmt.Errorf("seconds %q: %w", seconds, err)
	}
	return d + m/60 + s/3600, nil
}

// applyHemisphere единственное место, где учитывается буква полушария
func applyHemisphere(value float64, hemisphere string, signed bool) float64 {
	if signed && (hemisphere == "S" || hemisphere == "W") {
		return -value
	}
	return value
}

// ParseLines разбирает строки журнала. Некорректные строки пропускаются,
// порядок остальных сохраняется. Если не осталось ни одной точки,
// возвращается ErrNoValidData.
func (p *Parser) ParseLines(lines []string) (*Result, error) {
	result := &Result{
		Fixes: make([]models.Fix, 0, len(lines)),
	}

	for i, line := range lines {
		result.Stats.Lines++

		fix, err := p.ParseLine(line)
		if err != nil {
			result.Stats.Dropped++
			if p.logger.IsDebug() {
				p.logger.WithField("line_number", i+1).
					WithField("error", err).
					Debug("Line dropped")
			}
			continue
		}

		result.Fixes = append(result.Fixes, fix)
	}
	result.Stats.Parsed = len(result.Fixes)

	metrics.LinesProcessed.WithLabelValues("parsed").Add(float64(result.Stats.Parsed))
	metrics.LinesProcessed.WithLabelValues("dropped").Add(float64(result.Stats.Dropped))

	p.logger.WithField("lines", result.Stats.Lines).
		WithField("parsed", result.Stats.Parsed).
		WithField("dropped", result.Stats.Dropped).
		Debug("GPS log parsed")

	if len(result.Fixes) == 0 {
		return nil, fmt.Errorf("%w: %d lines, none matched the log format", ErrNoValidData, result.Stats.Lines)
	}

	return result, nil
}

// ParseText разбирает многострочный текст журнала
func (p *Parser) ParseText(text string) (*Result, error) {
	return p.ParseLines(SplitLines(text))
}

// ParseReader читает журнал построчно из reader.
// Длина строки не ограничена: слишком длинная строка просто не совпадет с форматом.
func (p *Parser) ParseReader(r io.Reader) (*Result, error) {
	reader := bufio.NewReader(r)

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read GPS log: %w", err)
		}
	}

	return p.ParseLines(lines)
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines делит текст на строки по \n, \r\n и \r; завершающий перевод строки не дает пустой строки
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(lineBreaks.Replace(text), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
