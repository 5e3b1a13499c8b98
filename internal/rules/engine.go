// Package rules evaluates user-defined assignment rules against events
// and sessions. The engine is stateless and side-effect free; callers
// persist any assignment it produces.
package rules

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

// Engine matches priority-ordered assignment rules against events and
// sessions. Safe for concurrent use.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a rule engine. A nil logger is replaced with a no-op
// logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// subject is the common view the matcher needs of an event or session.
type subject struct {
	userID      string
	processName string
	title       string
	eventID     uint
}

// MatchEvent evaluates the rules against an event and returns the
// assignment of the highest-priority matching rule, or nil when no rule
// matches.
func (e *Engine) MatchEvent(event *models.Event, ruleSet []models.AssignmentRule) *models.Assignment {
	return e.match(subject{
		userID:      event.UserID,
		processName: event.ProcessName,
		title:       event.WindowTitle,
		eventID:     event.ID,
	}, ruleSet)
}

// MatchSession evaluates the rules against a session. A produced
// assignment references the session's first event.
func (e *Engine) MatchSession(session *models.Session, ruleSet []models.AssignmentRule) *models.Assignment {
	return e.match(subject{
		userID:      session.UserID,
		processName: session.ProcessName,
		title:       session.WindowTitleBase,
		eventID:     session.EventIDs.FirstEventID(),
	}, ruleSet)
}

func (e *Engine) match(subj subject, ruleSet []models.AssignmentRule) *models.Assignment {
	candidates := make([]models.AssignmentRule, 0, len(ruleSet))
	for _, rule := range ruleSet {
		if rule.Enabled && rule.UserID == subj.userID {
			candidates = append(candidates, rule)
		}
	}

	// Highest priority first, ties keep input order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	for i := range candidates {
		if e.ruleMatches(&candidates[i], subj) {
			return buildAssignment(&candidates[i], subj)
		}
	}

	return nil
}

// ruleMatches checks all present conditions of a rule (logical AND);
// absent conditions are vacuously satisfied.
func (e *Engine) ruleMatches(rule *models.AssignmentRule, subj subject) bool {
	if rule.ProcessPattern != "" {
		if !matchWildcard(subj.processName, rule.ProcessPattern) {
			return false
		}
	}

	if rule.TitleContains != "" {
		// A set contains-condition fails against a title-less subject
		if subj.title == "" {
			return false
		}
		if !strings.Contains(strings.ToLower(subj.title), strings.ToLower(rule.TitleContains)) {
			return false
		}
	}

	if rule.TitleRegex != "" && subj.title != "" {
		re, err := regexp.Compile("(?i)" + rule.TitleRegex)
		if err != nil {
			// Broken pattern does not disqualify the rule
			e.logger.Warn("invalid title_regex in assignment rule",
				zap.Uint("rule_id", rule.ID),
				zap.String("rule_name", rule.Name),
				zap.String("pattern", rule.TitleRegex),
				zap.Error(err))
		} else if !re.MatchString(subj.title) {
			return false
		}
	}

	return true
}

// matchWildcard does simple wildcard matching where * matches any run of
// characters and ? a single character. Anchored, case-insensitive.
func matchWildcard(value, pattern string) bool {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	matched, err := regexp.MatchString(b.String(), value)
	if err != nil {
		return false
	}
	return matched
}

func buildAssignment(rule *models.AssignmentRule, subj subject) *models.Assignment {
	comment := rule.AutoCommentTemplate
	if comment == "" {
		comment = "Auto-assigned via rule: " + rule.Name
	}
	if subj.title != "" {
		comment = strings.ReplaceAll(comment, "{title}", subj.title)
	}
	comment = strings.ReplaceAll(comment, "{process}", subj.processName)

	return &models.Assignment{
		EventID:      subj.eventID,
		ProjectID:    rule.AutoProjectID,
		MilestoneID:  rule.AutoMilestoneID,
		ActivityType: rule.AutoActivity,
		Comment:      comment,
	}
}
