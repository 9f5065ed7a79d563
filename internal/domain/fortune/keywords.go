package fortune

var keywords = map[int][]string{
	1:  {"beginnings", "leadership", "independence", "creativity"},
	2:  {"cooperation", "balance", "sensitivity", "peace"},
	3:  {"expression", "joy", "sociability", "creativity"},
	4:  {"stability", "effort", "order", "practicality"},
	5:  {"change", "freedom", "adventure", "adaptability"},
	6:  {"service", "responsibility", "harmony", "family"},
	7:  {"inquiry", "analysis", "spirituality", "introspection"},
	8:  {"abundance", "power", "achievement", "organization"},
	9:  {"completion", "humanitarianism", "wisdom", "empathy"},
	11: {"intuition", "revelation", "idealism", "inspiration"},
	22: {"manifestation", "master building", "universal love", "practical idealism"},
}

// Keywords returns the themes associated with a fortune number, or nil
// for numbers outside the set.
func Keywords(n int) []string {
	kw, ok := keywords[n]
	if !ok {
		return nil
	}
	out := make([]string, len(kw))
	copy(out, kw)
	return out
}
