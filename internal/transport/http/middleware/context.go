package middleware

type ctxKey string

const ctxKeyClaims ctxKey = "claims"
