package models

// Fix одна точка журнала GPS: время и координаты
type Fix struct {
	Time TimeOfDay `json:"time"`
	GeoPoint
}

// Movement параметры движения относительно предыдущей точки.
// Все поля присутствуют вместе; SpeedKmh отсутствует при нулевом интервале.
type Movement struct {
	ElapsedSeconds int      `json:"elapsed_seconds"`
	DistanceMeters float64  `json:"distance_meters"`
	SpeedKmh       *float64 `json:"speed_kmh"`
	BearingDegrees float64  `json:"bearing_degrees"`
}

// MovementRecord точка с параметрами движения (Movement == nil у первой точки)
type MovementRecord struct {
	Fix
	Movement *Movement `json:"movement"`
}

// Speed возвращает скорость, если она определена
func (r MovementRecord) Speed() (float64, bool) {
	if r.Movement == nil || r.Movement.SpeedKmh == nil {
		return 0, false
	}
	return *r.Movement.SpeedKmh, true
}

// Bearing возвращает направление движения, если оно определено
func (r MovementRecord) Bearing() (float64, bool) {
	if r.Movement == nil {
		return 0, false
	}
	return r.Movement.BearingDegrees, true
}

// Change изменение скорости и направления относительно предыдущей записи
type Change struct {
	AccelerationG        *float64 `json:"acceleration_g"`
	BearingChangeDegrees float64  `json:"bearing_change_degrees"`
}

// ChangeRecord запись с ускорением и изменением направления (Change == nil, если
// у предыдущей записи скорость не определена)
type ChangeRecord struct {
	MovementRecord
	Change *Change `json:"change"`
}

// Color цвет отметки на карте (RGBA hex)
type Color string

// Annotation результат классификации записи
type Annotation struct {
	ErrorCount  int      `json:"error_count"`
	Color       Color    `json:"color"`
	MarkerSize  float64  `json:"marker_size"`
	Description []string `json:"description"`
}

// AnnotatedRecord полностью обработанная запись
type AnnotatedRecord struct {
	ChangeRecord
	Annotation
}

// HasErrors сообщает, сработало ли хотя бы одно правило
func (r AnnotatedRecord) HasErrors() bool {
	return r.ErrorCount > 0
}

// MapPoint точка для отображения на карте
type MapPoint struct {
	Time    TimeOfDay `json:"time"`
	GeoPoint
	Color   Color   `json:"color"`
	Size    float64 `json:"size"`
	Geohash string  `json:"geohash"`
}

// DuplicateMember точка из группы дублей с исходным временем и позицией в журнале
type DuplicateMember struct {
	Index int       `json:"index"`
	Time  TimeOfDay `json:"time"`
}

// DuplicateGroup точки с одинаковыми координатами (больше одной)
type DuplicateGroup struct {
	GeoPoint
	Count   int               `json:"count"`
	Geohash string            `json:"geohash,omitempty"`
	Members []DuplicateMember `json:"members"`
}

// Float возвращает указатель на значение (для необязательных полей)
func Float(v float64) *float64 {
	return &v
}
