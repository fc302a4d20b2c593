package quiz

// Topic names as offered on the interview-prep page.
const (
	TopicFrontEnd    = "Front-End Development (JS + React)"
	TopicDataScience = "Data Science Fundamentals"
	TopicML          = "Machine Learning"
	TopicUIUX        = "UI/UX Design"
	TopicNetworking  = "Computer Networking"
)

var topicCollections = map[string]string{
	TopicFrontEnd:    "mcqs",
	TopicML:          "ml_mcqs",
	TopicDataScience: "ds_mcqs",
	TopicUIUX:        "ui_mcqs",
	TopicNetworking:  "cn_mcqs",
}

// Topics returns the selectable topics in display order.
func Topics() []string {
	return []string{TopicFrontEnd, TopicDataScience, TopicML, TopicUIUX, TopicNetworking}
}

// CollectionFor maps a topic to the collection holding its questions.
func CollectionFor(topic string) (string, bool) {
	c, ok := topicCollections[topic]
	return c, ok
}
