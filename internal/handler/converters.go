package handler

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/flybeeper/gps-checker/internal/check"
)

// convertReportToProto переводит отчет в google.protobuf.Struct.
// Поля и имена совпадают с JSON-ответом.
func convertReportToProto(report *check.Report) (*structpb.Struct, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode report fields: %w", err)
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build protobuf struct: %w", err)
	}
	return msg, nil
}

// marshalReportProto дописывает отчет в wire-формате protobuf к buf
func marshalReportProto(buf []byte, report *check.Report) ([]byte, error) {
	msg, err := convertReportToProto(report)
	if err != nil {
		return nil, err
	}
	return proto.MarshalOptions{}.MarshalAppend(buf, msg)
}

// convertRulesToJSON описание правил классификатора с текущими порогами
func convertRulesToJSON(t check.Thresholds) []map[string]interface{} {
	thresholds := map[string]interface{}{
		check.RuleLargeSpeedChange:     t.MaxAccelerationG,
		check.RuleLargeDirectionChange: t.MaxBearingChange,
		check.RuleNoMovement:           0,
		check.RuleDataGap:              t.MaxElapsedSeconds,
	}

	rules := make([]map[string]interface{}, 0, len(check.Rules))
	for _, rule := range check.Rules {
		rules = append(rules, map[string]interface{}{
			"name":           rule.Name,
			"label":          rule.Label,
			"color":          rule.Color,
			"size_increment": rule.SizeIncrement,
			"threshold":      thresholds[rule.Name],
		})
	}
	return rules
}
