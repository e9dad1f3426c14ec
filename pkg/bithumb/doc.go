// Package bithumb implements a typed client for the Bithumb cryptocurrency
// exchange REST API (v1): market and candle data, account balances, and
// order management over signed requests.
//
// Bithumb API documentation: https://apidocs.bithumb.com
package bithumb
