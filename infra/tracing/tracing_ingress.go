package tracing

import (
	"io"

	"gradflow/common"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// InitTracing installs a jaeger tracer configured from JAEGER_* environment
// variables as the opentracing global tracer.
func InitTracing() io.Closer {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		logrus.Warnf("tracing disabled, jaeger config invalid: %v", err)
		return nil
	}
	cfg.ServiceName = common.GetServiceName()

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		logrus.Warnf("tracing disabled, jaeger tracer init failed: %v", err)
		return nil
	}
	opentracing.SetGlobalTracer(tracer)
	return closer
}

func TracingIngress() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tracer := opentracing.GlobalTracer()
		spanCtx, _ := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(ctx.Request.Header))
		serverSpan := tracer.StartSpan(ctx.Request.Method+" "+ctx.Request.RequestURI, ext.RPCServerOption(spanCtx))
		defer serverSpan.Finish()

		ctx.Request = ctx.Request.WithContext(opentracing.ContextWithSpan(ctx.Request.Context(), serverSpan))

		ctx.Next()
	}
}
