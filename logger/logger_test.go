/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestBuild(t *testing.T) {
	var buf bytes.Buffer
	l := Build(Config{Level: "debug", Component: "geoviz"}, &buf)
	l.Debug().Str("collection", "sales").Msg("hello")
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("log line %q is not JSON: %s", buf.String(), err)
	}
	delete(got, "timestamp")
	want := map[string]any{
		"level":      "debug",
		"component":  "geoviz",
		"collection": "sales",
		"msg":        "hello",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("log line diff (-want +got) %s", diff)
	}
}

func TestParseLevel(t *testing.T) {
	for _, test := range []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: " WARN ", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "info", want: zerolog.InfoLevel},
		{level: "verbose", want: zerolog.InfoLevel},
	} {
		if got := ParseLevel(test.level); got != test.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", test.level, got, test.want)
		}
	}
}

func TestFromContext(t *testing.T) {
	// Build sets the field names.
	Build(Config{}, io.Discard)
	var buf bytes.Buffer
	parent := zerolog.New(&buf).Level(zerolog.InfoLevel)
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithComponent(ctx, "data_source")
	ctx = WithCollection(ctx, "")
	FromContext(ctx, &parent).Info().Msg("served")
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("log line %q is not JSON: %s", buf.String(), err)
	}
	want := map[string]any{
		"level":      "info",
		"request_id": "req-1",
		"component":  "data_source",
		"msg":        "served",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("log line diff (-want +got) %s", diff)
	}
}

func TestWithRequestIDGenerates(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	id, _ := ctx.Value(ctxReqIDKey).(string)
	if len(id) != 16 {
		t.Errorf("generated request id %q, want 16 hex digits", id)
	}
}
