// internal/infra/firestoredb/event.go
package firestoredb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"attendance_notifier/internal/domain/attendance"

	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ErrInvalidPath is returned when a document name is not an attendance record.
var ErrInvalidPath = errors.New("document path does not match attendance/{date}/records/{employeeId}")

// documentEventData is the payload of a Firestore document write trigger.
// Each side is a Firestore REST document; a missing side has no name.
type documentEventData struct {
	OldValue   json.RawMessage `json:"oldValue"`
	Value      json.RawMessage `json:"value"`
	UpdateMask *struct {
		FieldPaths []string `json:"fieldPaths"`
	} `json:"updateMask,omitempty"`
}

// backgroundEvent wraps documentEventData with its delivery context.
type backgroundEvent struct {
	Context *struct {
		EventID  string `json:"eventId"`
		Resource string `json:"resource"`
	} `json:"context"`
	EventID  string          `json:"eventId"`
	Resource json.RawMessage `json:"resource"`
	Data     json.RawMessage `json:"data"`
}

// WriteEvent is a decoded attendance write.
type WriteEvent struct {
	EventID       string
	Params        attendance.PathParams
	Before        attendance.Snapshot
	After         attendance.Snapshot
	UpdatedFields []string
}

var documentUnmarshal = protojson.UnmarshalOptions{DiscardUnknown: true}

// DecodeWriteEvent parses a trigger delivery body. Both the bare
// {oldValue, value, updateMask} shape and the {context, data} envelope are
// accepted. resource is the document name taken from the transport, if any;
// it is only consulted when neither snapshot carries a name.
func DecodeWriteEvent(body []byte, resource string) (*WriteEvent, error) {
	var env backgroundEvent
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("error decoding event: %w", err)
	}

	evt := &WriteEvent{EventID: env.EventID}
	payload := body
	if len(env.Data) > 0 && !isNull(env.Data) {
		payload = env.Data
		if env.Context != nil {
			evt.EventID = env.Context.EventID
			if env.Context.Resource != "" {
				resource = env.Context.Resource
			}
		} else if r := resourceName(env.Resource); r != "" {
			resource = r
		}
	}

	var data documentEventData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("error decoding event data: %w", err)
	}
	if data.UpdateMask != nil {
		evt.UpdatedFields = data.UpdateMask.FieldPaths
	}

	before, err := decodeDocument(data.OldValue)
	if err != nil {
		return nil, fmt.Errorf("error decoding oldValue: %w", err)
	}
	after, err := decodeDocument(data.Value)
	if err != nil {
		return nil, fmt.Errorf("error decoding value: %w", err)
	}
	return evt.resolve(before, after, resource)
}

// DecodeWriteEventProto parses a binary-mode CloudEvent body, the
// google.events.cloud.firestore.v1.DocumentEventData message Eventarc sends
// with Content-Type application/protobuf.
func DecodeWriteEventProto(body []byte, resource string) (*WriteEvent, error) {
	var data firestoredata.DocumentEventData
	if err := proto.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("error decoding event: %w", err)
	}

	before, err := toFirestoreDocument(data.GetOldValue())
	if err != nil {
		return nil, fmt.Errorf("error decoding oldValue: %w", err)
	}
	after, err := toFirestoreDocument(data.GetValue())
	if err != nil {
		return nil, fmt.Errorf("error decoding value: %w", err)
	}

	evt := &WriteEvent{UpdatedFields: data.GetUpdateMask().GetFieldPaths()}
	return evt.resolve(before, after, resource)
}

// resolve fills the snapshots and path params. A document without a name is
// treated as absent; resource is used when neither side names the record.
func (evt *WriteEvent) resolve(before, after *firestorepb.Document, resource string) (*WriteEvent, error) {
	evt.Before = snapshotOf(before)
	evt.After = snapshotOf(after)

	name := after.GetName()
	if name == "" {
		name = before.GetName()
	}
	if name == "" {
		name = resource
	}

	var err error
	evt.Params, err = ParseRecordPath(name)
	if err != nil {
		return nil, err
	}
	return evt, nil
}

// ParseRecordPath extracts date and employeeId from a full resource name
// (projects/p/databases/d/documents/attendance/...), a "documents/..." subject
// or a bare relative path.
func ParseRecordPath(name string) (attendance.PathParams, error) {
	rel := strings.Trim(name, "/")
	if i := strings.Index(rel, "/documents/"); i >= 0 {
		rel = rel[i+len("/documents/"):]
	} else {
		rel = strings.TrimPrefix(rel, "documents/")
	}

	parts := strings.Split(rel, "/")
	if len(parts) != 4 || parts[0] != "attendance" || parts[2] != "records" || parts[1] == "" || parts[3] == "" {
		return attendance.PathParams{}, fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return attendance.PathParams{Date: parts[1], EmployeeID: parts[3]}, nil
}

func decodeDocument(raw json.RawMessage) (*firestorepb.Document, error) {
	if len(raw) == 0 || isNull(raw) {
		return nil, nil
	}
	var doc firestorepb.Document
	if err := documentUnmarshal.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// toFirestoreDocument converts the event Document into the client type.
// Both messages share field numbers, so the wire bytes decode directly.
func toFirestoreDocument(doc *firestoredata.Document) (*firestorepb.Document, error) {
	if doc == nil {
		return nil, nil
	}
	raw, err := proto.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out firestorepb.Document
	if err := proto.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func snapshotOf(doc *firestorepb.Document) attendance.Snapshot {
	if doc.GetName() == "" {
		return attendance.Snapshot{}
	}
	return attendance.Snapshot{Exists: true, Record: recordFromFields(doc.GetFields())}
}

// recordFromFields maps the typed fields of a record. A logs value that is not
// an array reads as no logs.
func recordFromFields(fields map[string]*firestorepb.Value) attendance.Record {
	rec := attendance.Record{Name: displayString(fields["name"])}
	for _, v := range fields["logs"].GetArrayValue().GetValues() {
		entry := v.GetMapValue().GetFields()
		rec.Logs = append(rec.Logs, attendance.LogEntry{
			Type: displayString(entry["type"]),
			Time: displayString(entry["time"]),
		})
	}
	return rec
}

// displayString renders scalar values the way they would be interpolated into
// a message. Null, absent and composite values render as "".
func displayString(v *firestorepb.Value) string {
	switch val := v.GetValueType().(type) {
	case *firestorepb.Value_StringValue:
		return val.StringValue
	case *firestorepb.Value_IntegerValue:
		return strconv.FormatInt(val.IntegerValue, 10)
	case *firestorepb.Value_DoubleValue:
		return strconv.FormatFloat(val.DoubleValue, 'f', -1, 64)
	case *firestorepb.Value_BooleanValue:
		if !val.BooleanValue {
			return ""
		}
		return "true"
	default:
		return ""
	}
}

func resourceName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Name
	}
	return ""
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
