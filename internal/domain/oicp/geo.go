package oicp

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	googleCoordinatesPattern = regexp.MustCompile(`^(-?1?\d{1,2}\.\d{1,6})\s*,?\s*(-?1?\d{1,2}\.\d{1,6})$`)
	decimalDegreePattern     = regexp.MustCompile(`^-?1?\d{1,2}\.\d{1,6}$`)
	dmsPattern               = regexp.MustCompile(`^([NSEW])\s?(\d{1,3})°\s?(\d{1,2})'\s?(\d{1,2}(?:\.\d{1,3})?)"$`)
)

// GeoCoordinates 地理坐标 (WGS84)。
// Format 决定序列化时使用的表示方式，默认为 DecimalDegree。
type GeoCoordinates struct {
	Latitude  float64
	Longitude float64
	Format    GeoCoordinatesResponseFormat
}

type googleCoordinates struct {
	Coordinates string `json:"Coordinates"`
}

type pairCoordinates struct {
	Longitude string `json:"Longitude"`
	Latitude  string `json:"Latitude"`
}

type geoCoordinatesJSON struct {
	Google              *googleCoordinates `json:"Google,omitempty"`
	DecimalDegree       *pairCoordinates   `json:"DecimalDegree,omitempty"`
	DegreeMinuteSeconds *pairCoordinates   `json:"DegreeMinuteSeconds,omitempty"`
}

// NewGeoCoordinates 创建坐标，校验经纬度范围
func NewGeoCoordinates(latitude, longitude float64) (GeoCoordinates, error) {
	if latitude < -90 || latitude > 90 {
		return GeoCoordinates{}, fmt.Errorf("latitude %f out of range", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return GeoCoordinates{}, fmt.Errorf("longitude %f out of range", longitude)
	}
	return GeoCoordinates{Latitude: latitude, Longitude: longitude, Format: GeoFormatDecimalDegree}, nil
}

// WithFormat 返回使用指定格式序列化的副本
func (g GeoCoordinates) WithFormat(format GeoCoordinatesResponseFormat) GeoCoordinates {
	g.Format = format
	return g
}

func (g GeoCoordinates) format() GeoCoordinatesResponseFormat {
	if g.Format == "" {
		return GeoFormatDecimalDegree
	}
	return g.Format
}

// Equal 按6位小数精度比较坐标
func (g GeoCoordinates) Equal(other GeoCoordinates) bool {
	return micro(g.Latitude) == micro(other.Latitude) &&
		micro(g.Longitude) == micro(other.Longitude) &&
		g.format() == other.format()
}

func micro(v float64) int64 {
	return int64(math.Round(v * 1e6))
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(float64(micro(v))/1e6, 'f', 6, 64)
}

// MarshalJSON 按Format输出OICP坐标结构
func (g GeoCoordinates) MarshalJSON() ([]byte, error) {
	var out geoCoordinatesJSON
	switch g.format() {
	case GeoFormatGoogle:
		out.Google = &googleCoordinates{Coordinates: formatDecimal(g.Latitude) + " " + formatDecimal(g.Longitude)}
	case GeoFormatDegreeMinuteSeconds:
		out.DegreeMinuteSeconds = &pairCoordinates{
			Longitude: formatDMS(g.Longitude, "E", "W"),
			Latitude:  formatDMS(g.Latitude, "N", "S"),
		}
	case GeoFormatDecimalDegree:
		out.DecimalDegree = &pairCoordinates{
			Longitude: formatDecimal(g.Longitude),
			Latitude:  formatDecimal(g.Latitude),
		}
	default:
		return nil, fmt.Errorf("unsupported geo coordinates format %q", g.Format)
	}
	return json.Marshal(out)
}

// UnmarshalJSON 接受三种OICP坐标格式中的任意一种
func (g *GeoCoordinates) UnmarshalJSON(data []byte) error {
	var in geoCoordinatesJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var (
		parsed GeoCoordinates
		err    error
	)
	switch {
	case in.Google != nil:
		parsed, err = parseGoogleCoordinates(in.Google.Coordinates)
	case in.DecimalDegree != nil:
		parsed, err = parseDecimalDegree(*in.DecimalDegree)
	case in.DegreeMinuteSeconds != nil:
		parsed, err = parseDegreeMinuteSeconds(*in.DegreeMinuteSeconds)
	default:
		return fmt.Errorf("geo coordinates must be given as Google, DecimalDegree or DegreeMinuteSeconds")
	}
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func parseGoogleCoordinates(s string) (GeoCoordinates, error) {
	m := googleCoordinatesPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return GeoCoordinates{}, fmt.Errorf("invalid Google coordinates %q", s)
	}
	lat, _ := strconv.ParseFloat(m[1], 64)
	lon, _ := strconv.ParseFloat(m[2], 64)
	g, err := NewGeoCoordinates(lat, lon)
	return g.WithFormat(GeoFormatGoogle), err
}

func parseDecimalDegree(p pairCoordinates) (GeoCoordinates, error) {
	if !decimalDegreePattern.MatchString(p.Latitude) {
		return GeoCoordinates{}, fmt.Errorf("invalid decimal degree latitude %q", p.Latitude)
	}
	if !decimalDegreePattern.MatchString(p.Longitude) {
		return GeoCoordinates{}, fmt.Errorf("invalid decimal degree longitude %q", p.Longitude)
	}
	lat, _ := strconv.ParseFloat(p.Latitude, 64)
	lon, _ := strconv.ParseFloat(p.Longitude, 64)
	return NewGeoCoordinates(lat, lon)
}

func parseDegreeMinuteSeconds(p pairCoordinates) (GeoCoordinates, error) {
	lat, err := parseDMS(p.Latitude, "N", "S")
	if err != nil {
		return GeoCoordinates{}, err
	}
	lon, err := parseDMS(p.Longitude, "E", "W")
	if err != nil {
		return GeoCoordinates{}, err
	}
	g, err := NewGeoCoordinates(lat, lon)
	return g.WithFormat(GeoFormatDegreeMinuteSeconds), err
}

func parseDMS(s, positive, negative string) (float64, error) {
	m := dmsPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || (m[1] != positive && m[1] != negative) {
		return 0, fmt.Errorf("invalid degree minute seconds value %q", s)
	}
	deg, _ := strconv.ParseFloat(m[2], 64)
	min, _ := strconv.ParseFloat(m[3], 64)
	sec, _ := strconv.ParseFloat(m[4], 64)
	if min >= 60 || sec >= 60 {
		return 0, fmt.Errorf("invalid degree minute seconds value %q", s)
	}
	v := deg + min/60 + sec/3600
	if m[1] == negative {
		v = -v
	}
	return v, nil
}

func formatDMS(v float64, positive, negative string) string {
	hemisphere := positive
	if v < 0 {
		hemisphere = negative
		v = -v
	}
	// 以毫角秒为单位取整，避免浮点误差产生 60.000"
	total := int64(math.Round(float64(micro(v)) / 1e6 * 3600 * 1000))
	deg := total / (3600 * 1000)
	rest := total % (3600 * 1000)
	min := rest / (60 * 1000)
	msec := rest % (60 * 1000)
	return fmt.Sprintf("%s %d° %d' %d.%03d\"", hemisphere, deg, min, msec/1000, msec%1000)
}
