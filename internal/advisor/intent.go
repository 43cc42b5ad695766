package advisor

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the coarse classification of a user question.
type Intent int

const (
	IntentNone Intent = iota
	IntentNeedMoney
	IntentPortfolioQuery
	IntentSellAdvice
)

func (i Intent) String() string {
	switch i {
	case IntentNeedMoney:
		return "need-money"
	case IntentPortfolioQuery:
		return "portfolio-query"
	case IntentSellAdvice:
		return "sell-advice"
	default:
		return "none"
	}
}

var needMoneyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)i need \$?([0-9,]+(?:\.[0-9]{1,2})?k?)`),
	regexp.MustCompile(`(?i)i want to buy.*?\$?([0-9,]+(?:\.[0-9]{1,2})?k?)`),
}

var portfolioQueryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)portfolio worth`),
	regexp.MustCompile(`(?i)total value`),
	regexp.MustCompile(`(?i)how much.*have`),
	regexp.MustCompile(`(?i)portfolio balance`),
}

var sellAdvicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)what should i sell`),
	regexp.MustCompile(`(?i)should i sell`),
	regexp.MustCompile(`(?i)recommend selling`),
}

// ParseIntent matches a question against the known phrase patterns. For
// need-money questions the second return is the extracted dollar amount, with
// a trailing "k" read as thousands ("2k" -> 2000).
func ParseIntent(text string) (Intent, float64) {
	for _, p := range needMoneyPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := m[1]
		thousands := strings.HasSuffix(strings.ToLower(raw), "k")
		raw = strings.TrimSuffix(strings.TrimSuffix(raw, "k"), "K")
		raw = strings.ReplaceAll(raw, ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if thousands {
			amount *= 1000
		}
		return IntentNeedMoney, amount
	}

	for _, p := range portfolioQueryPatterns {
		if p.MatchString(text) {
			return IntentPortfolioQuery, 0
		}
	}

	for _, p := range sellAdvicePatterns {
		if p.MatchString(text) {
			return IntentSellAdvice, 0
		}
	}

	return IntentNone, 0
}
