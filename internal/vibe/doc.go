// Package vibe defines the data model returned by the vibe analysis: a short
// vibe label, four captions (Short, Witty, Professional, Aesthetic) and
// fifteen hashtags. Values are immutable once produced.
package vibe
