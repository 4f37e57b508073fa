package ingredient

// Entries 測試用，回傳食材表
func (n *Normalizer) Entries() []Info {
	return n.entries
}
