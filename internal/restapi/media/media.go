package media

const ContentTypeApplicationJson = "application/json"
const ContentTypeTextPlain = "text/plain"
