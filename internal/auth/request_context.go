package auth

import (
	"context"
)

type contextKey string

var uploaderClaimsKey contextKey = "uploader_claims"

func SetUploaderClaims(ctx context.Context, claims *UploaderClaims) context.Context {
	return context.WithValue(ctx, uploaderClaimsKey, claims)
}

func GetUploaderClaims(ctx context.Context) *UploaderClaims {
	val := ctx.Value(uploaderClaimsKey)
	if claims, ok := val.(*UploaderClaims); ok {
		return claims
	}
	return nil
}
