package interfaces

// DetailFetchers 从适配器列表中筛出支持详情摘录的，保持原顺序
func DetailFetchers(adapters []SourceAdapter) []DetailExcerptFetcher {
	var out []DetailExcerptFetcher
	for _, a := range adapters {
		if f, ok := a.(DetailExcerptFetcher); ok {
			out = append(out, f)
		}
	}
	return out
}
