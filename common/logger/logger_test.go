package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/trace"

	"meetapp.app/api/common/logger"
)

var _ = Describe("ContextHandler", func() {
	var (
		buf *bytes.Buffer
		log *slog.Logger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		log = slog.New(logger.NewContextHandler(slog.NewJSONHandler(buf, nil)))
	})

	record := func() map[string]any {
		var out map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &out)).To(Succeed())
		return out
	}

	It("adds the context's log fields", func() {
		userID, meetupID := int64(7), int64(99)
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{UserID: &userID})
		ctx = logger.WithLogFields(ctx, logger.LogFields{MeetupID: &meetupID, Component: "meetapp.test"})

		log.InfoContext(ctx, "subscription created")

		out := record()
		Expect(out).To(HaveKeyWithValue("user_id", BeNumerically("==", 7)))
		Expect(out).To(HaveKeyWithValue("meetup_id", BeNumerically("==", 99)))
		Expect(out).To(HaveKeyWithValue("component", "meetapp.test"))
		Expect(out).NotTo(HaveKey("trace_id"))
	})

	It("keeps earlier fields when merging", func() {
		first, second := int64(1), int64(2)
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{UserID: &first, Component: "a"})
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &second})

		fields := logger.GetLogFields(ctx)
		Expect(*fields.UserID).To(Equal(int64(2)))
		Expect(fields.Component).To(Equal("a"))
	})

	It("logs nothing extra without fields", func() {
		log.Info("plain")
		Expect(record()).To(HaveLen(3))
	})
})

var _ = Describe("RedactEmail", func() {
	DescribeTable("masks the local part",
		func(in, want string) {
			Expect(logger.RedactEmail(in)).To(Equal(want))
		},
		Entry("regular", "ana@example.com", "a***@example.com"),
		Entry("no at sign", "ana", "***"),
		Entry("empty local part", "@example.com", "***"),
	)
})

var _ = Describe("TraceParentFromContext", func() {
	It("is empty without a span", func() {
		Expect(logger.TraceParentFromContext(context.Background())).To(BeEmpty())
	})

	It("lets a task span continue the request's trace", func() {
		traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
		request := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		}))

		traceParent := logger.TraceParentFromContext(request)
		Expect(traceParent).To(Equal("00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"))

		span := logger.StartTaskSpan(context.Background(), traceParent, "new_subscription_mail", "1-0")
		defer span.Finish(nil)

		Expect(trace.SpanContextFromContext(span.Context()).TraceID()).To(Equal(traceID))
	})

	It("ignores a malformed traceparent", func() {
		span := logger.StartTaskSpan(context.Background(), "garbage", "new_subscription_mail", "1-0")
		defer span.Finish(nil)

		Expect(logger.TraceParentFromContext(span.Context())).To(BeEmpty())
	})
})
