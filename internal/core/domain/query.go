package domain

import (
	"strconv"
	"strings"
)

// QueryTokens compiles a parameter set into GitHub search tokens.
//
// Token order is fixed so the same input always produces the same query:
// free text, language, stars, forks, created, pushed, user, org,
// visibility, fork exclusion, topics, subtopics, tags, excluded topics.
// Caller-supplied text is passed through without escaping.
func QueryTokens(p ParameterSet) []string {
	tokens := make([]string, 0, 10+len(p.Topics)+len(p.Subtopics)+len(p.Tags)+len(p.ExcludedTopics))

	if p.Query != "" {
		tokens = append(tokens, p.Query)
	}
	if p.Language != "" {
		tokens = append(tokens, "language:"+p.Language)
	}
	if tok := rangeQualifier("stars", p.Stars); tok != "" {
		tokens = append(tokens, tok)
	}
	if tok := rangeQualifier("forks", p.Forks); tok != "" {
		tokens = append(tokens, tok)
	}
	if p.Created != "" {
		tokens = append(tokens, "created:"+p.Created)
	}
	if p.Pushed != "" {
		tokens = append(tokens, "pushed:"+p.Pushed)
	}
	if p.Owner != "" {
		tokens = append(tokens, "user:"+p.Owner)
	}
	if p.Organization != "" {
		tokens = append(tokens, "org:"+p.Organization)
	}
	if p.PublicOnly {
		tokens = append(tokens, "is:public")
	}
	// Including forks is signalled by omitting the qualifier.
	if !p.IncludeForks {
		tokens = append(tokens, "fork:false")
	}
	for _, t := range p.Topics {
		tokens = append(tokens, "topic:"+t)
	}
	for _, t := range p.Subtopics {
		tokens = append(tokens, "topic:subtopic-"+t)
	}
	for _, t := range p.Tags {
		tokens = append(tokens, "topic:tag-"+t)
	}
	for _, t := range p.ExcludedTopics {
		tokens = append(tokens, "-topic:"+t)
	}

	return tokens
}

// CompileQuery returns the GitHub search query string for p.
func CompileQuery(p ParameterSet) string {
	return strings.Join(QueryTokens(p), " ")
}

func rangeQualifier(name string, r Range) string {
	switch {
	case r.Min != nil && r.Max != nil:
		return name + ":" + strconv.Itoa(*r.Min) + ".." + strconv.Itoa(*r.Max)
	case r.Min != nil:
		return name + ":>=" + strconv.Itoa(*r.Min)
	case r.Max != nil:
		return name + ":<=" + strconv.Itoa(*r.Max)
	default:
		return ""
	}
}
