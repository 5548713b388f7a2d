package services

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// recordSeparator splits topic from link in a record's plaintext. Topics may
// not contain it; links may.
const recordSeparator = "|"

var (
	errMalformedRecord = errors.New("malformed record: separator missing")
	errRecordNotUTF8   = errors.New("malformed record: invalid UTF-8")
)

func encodeRecord(topic, link string) []byte {
	return []byte(topic + recordSeparator + link)
}

func decodeRecord(plaintext []byte) (topic, link string, err error) {
	if !utf8.Valid(plaintext) {
		return "", "", errRecordNotUTF8
	}
	topic, link, ok := strings.Cut(string(plaintext), recordSeparator)
	if !ok {
		return "", "", errMalformedRecord
	}
	return topic, link, nil
}
