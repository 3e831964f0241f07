// Package llm extracts structured timetables from images with vision-capable
// language models. It supports Gemini, OpenAI and Anthropic, with retry
// logic, rate limiting, and response caching.
package llm
