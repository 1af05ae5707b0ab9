package otel

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"meetapp.app/api/core/config"
)

var _ = Describe("Setup", func() {
	It("is a no-op without a collector endpoint", func() {
		t, err := Setup(context.Background(), config.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(BeNil())
	})
})

var _ = Describe("sampler", func() {
	traceID := trace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36}

	decide := func(ratio float64, parent context.Context) sdktrace.SamplingDecision {
		return sampler(ratio).ShouldSample(sdktrace.SamplingParameters{
			ParentContext: parent,
			TraceID:       traceID,
			Name:          "task new_subscription_mail",
		}).Decision
	}

	It("keeps every root trace at ratio 1", func() {
		Expect(decide(1, context.Background())).To(Equal(sdktrace.RecordAndSample))
	})

	It("drops root traces at ratio 0", func() {
		Expect(decide(0, context.Background())).To(Equal(sdktrace.Drop))
	})

	It("follows a sampled remote parent regardless of ratio", func() {
		parent := trace.ContextWithRemoteSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     trace.SpanID{0x00, 0xf0, 0x67, 0xaa, 0x0b, 0xa9, 0x02, 0xb7},
			TraceFlags: trace.FlagsSampled,
			Remote:     true,
		}))
		Expect(decide(0, parent)).To(Equal(sdktrace.RecordAndSample))
	})
})

var _ = DescribeTable("parseHeaders",
	func(in string, want map[string]string) {
		Expect(parseHeaders(in)).To(Equal(want))
	},
	Entry("empty", "", map[string]string{}),
	Entry("single pair", "x-api-key=secret", map[string]string{"x-api-key": "secret"}),
	Entry("trims and skips junk", " a = 1 ,bogus,=2,b=x=y", map[string]string{"a": "1", "b": "x=y"}),
)
