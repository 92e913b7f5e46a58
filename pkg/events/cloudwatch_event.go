// Package events decodes the AWS CloudWatch (EventBridge) events that
// trigger instance-terminator, such as the scheduled rule that invokes
// it as a Lambda function.
//
// See https://docs.aws.amazon.com/AmazonCloudWatch/latest/events/EventTypes.html
package events

import (
	"encoding/json"
	"errors"
	"time"
)

const (
	// SourceScheduled is the Source of events sent by scheduled rules.
	SourceScheduled = "aws.events"

	// DetailTypeScheduled is the DetailType of events sent by scheduled rules.
	DetailTypeScheduled = "Scheduled Event"
)

// ErrInvalidCloudWatchEvent is returned when unmarshaling a
// CloudWatchEvent and the JSON did not contain a Source or DetailType.
var ErrInvalidCloudWatchEvent = errors.New("invalid CloudWatch event")

// CloudWatchEvent is the outer structure of an event sent via CloudWatch Events.
type CloudWatchEvent struct {
	// Example: "0"
	Version string `json:"version"`

	// Example: "89d1a02d-5ec7-412e-82f5-13505f849b41"
	ID string `json:"id"`

	// Example: "Scheduled Event"
	DetailType string `json:"detail-type"`

	// Example: "aws.events"
	Source string `json:"source"`

	// Example: "123456789012"
	AccountID string `json:"account"`

	// Example: "2016-12-30T18:44:49Z"
	Time time.Time `json:"time"`

	// Example: "eu-west-1"
	Region string `json:"region"`

	// Example: ["arn:aws:events:eu-west-1:123456789012:rule/instance-terminator"]
	Resources []string `json:"resources"`

	// Raw event detail. Scheduled events have an empty object.
	Detail json.RawMessage `json:"detail"`
}

// UnmarshalJSON implements the json Unmarshaler interface.
func (e *CloudWatchEvent) UnmarshalJSON(data []byte) error {
	type jsonEvent CloudWatchEvent // Avoid recursion.
	if err := json.Unmarshal(data, (*jsonEvent)(e)); err != nil {
		return err
	}
	if e.Source == "" || e.DetailType == "" {
		return ErrInvalidCloudWatchEvent
	}
	return nil
}

// Scheduled returns true if e was sent by a scheduled rule.
func (e *CloudWatchEvent) Scheduled() bool {
	return e.Source == SourceScheduled && e.DetailType == DetailTypeScheduled
}

// Rule returns the ARN of the rule that sent e, if known.
func (e *CloudWatchEvent) Rule() string {
	if len(e.Resources) == 0 {
		return ""
	}
	return e.Resources[0]
}

// Parse decodes a Lambda invocation payload as a CloudWatchEvent.
// An empty or null payload returns (nil, nil).
func Parse(payload []byte) (*CloudWatchEvent, error) {
	if len(payload) == 0 || string(payload) == "null" {
		return nil, nil
	}
	e := &CloudWatchEvent{}
	if err := json.Unmarshal(payload, e); err != nil {
		return nil, err
	}
	return e, nil
}
