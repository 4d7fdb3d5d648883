package common

import "context"

const ApplicationName = "billplz-payment-service"

type CtxKeyRequestID struct{}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return "00000000"
	}
	if reqID, ok := ctx.Value(CtxKeyRequestID{}).(string); ok {
		return reqID
	}
	return "ffffffff"
}
