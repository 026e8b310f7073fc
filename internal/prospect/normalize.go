package prospect

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// companySuffixes are legal-entity suffixes stripped during company
// name normalization. Each must appear as its own trailing word, with
// or without a separating comma, so "Acme Corp" and "Acme, Corp." key
// identically. Stripping repeats until no suffix matches.
var companySuffixes = []string{
	"l.p.", "lp", "l.l.c.", "llc", "inc.", "inc",
	"corp.", "corp", "corporation", "co.", "co",
	"ltd.", "ltd", "limited", "plc", "s.a.", "sa",
	"gmbh", "ag", "bv", "nv", "pvt. ltd.", "pvt ltd",
	"private limited", "pte. ltd.", "pte ltd",
}

// domainSuffixes are trailing words stripped when deriving a fallback
// email domain from a company name.
var domainSuffixes = []string{
	" corporation", " corp.", " corp", " inc.", " inc", " llc", " ltd.", " ltd",
	" limited", " company", " co.", " co", " group", " technologies", " tech",
	" systems", " solutions", " services", " enterprises", " international",
	" labs", " laboratory", " pbc", " plc",
}

// foldTransformer strips diacritics: NFKD decomposition followed by
// removal of combining marks.
var foldTransformer = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func foldAccents(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeCompanyName produces the identity key used for company
// deduplication: lowercase, trimmed, accent-folded, trailing legal
// suffixes stripped to fixpoint, internal whitespace collapsed.
// Normalizing an already-normalized name is a no-op.
func NormalizeCompanyName(name string) string {
	if name == "" {
		return ""
	}

	normalized := strings.ToLower(strings.TrimSpace(foldAccents(name)))

	for stripped := true; stripped; {
		normalized, stripped = stripCompanySuffix(normalized)
	}

	return strings.Join(strings.Fields(normalized), " ")
}

// stripCompanySuffix removes one trailing legal suffix along with its
// separator. The suffix must stand alone as the final word; "acmeinc"
// and "acme usa" are left intact.
func stripCompanySuffix(name string) (string, bool) {
	for _, suffix := range companySuffixes {
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		rest := name[:len(name)-len(suffix)]
		if rest == "" {
			continue
		}
		if last := rest[len(rest)-1]; last != ' ' && last != ',' {
			continue
		}
		rest = strings.TrimSuffix(strings.TrimSpace(rest), ",")
		return strings.TrimSpace(rest), true
	}
	return name, false
}

// NormalizeContactName produces the composite identity key for a
// contact within one company.
func NormalizeContactName(firstName, lastName string) string {
	first := strings.ToLower(strings.TrimSpace(foldAccents(firstName)))
	last := strings.ToLower(strings.TrimSpace(foldAccents(lastName)))
	if first == "" && last == "" {
		return ""
	}
	return first + "|" + last
}

// DeriveEmailDomain derives a plausible corporate email domain from a
// company name: strip one trailing corporate suffix, drop
// parenthesized segments and non-alphanumerics, lowercase, append
// ".com". Falls back to "example.com" for names that strip to nothing.
func DeriveEmailDomain(companyName string) string {
	if companyName == "" {
		return "example.com"
	}

	name := strings.ToLower(strings.TrimSpace(foldAccents(companyName)))

	for _, suffix := range domainSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = name[:len(name)-len(suffix)]
			break
		}
	}

	// Drop parenthesized segments.
	for {
		open := strings.Index(name, "(")
		if open < 0 {
			break
		}
		end := strings.Index(name[open:], ")")
		if end < 0 {
			name = name[:open]
			break
		}
		name = name[:open] + name[open+end+1:]
	}

	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "example.com"
	}
	return b.String() + ".com"
}

// FallbackEmail synthesizes an address for a contact that research did
// not surface one for.
func FallbackEmail(firstName, lastName, companyName string) string {
	domain := DeriveEmailDomain(companyName)
	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))
	if last == "" {
		return first + "@" + domain
	}
	return first + "." + last + "@" + domain
}

// IsRealEmail reports whether email looks observed rather than
// synthesized: non-empty, contains "@", and does not carry the
// placeholder prefix.
func IsRealEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && strings.Contains(email, "@") && !IsPlaceholderEmail(email)
}
