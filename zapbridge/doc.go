// Package zapbridge routes zap records through a corelog pipeline.
//
// It implements zapcore.Core, so existing zap call sites keep their
// API while the formatting and sink behavior comes from corelog:
//
//	cfg := logger.NewBuilder().
//		AddStreamSink(os.Stdout).
//		Build()
//	log := zap.New(zapbridge.NewCore(cfg))
//	log.Info("hello", zap.String("user", "alice"))
package zapbridge
