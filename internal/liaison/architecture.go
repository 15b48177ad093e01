package liaison

// TechCard describes one layer of the target platform.
type TechCard struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Architecture is the static system overview. PipelineSketch is illustrative
// pseudocode for a future retrieval pipeline; nothing in this service runs it.
type Architecture struct {
	Title          string     `json:"title"`
	Summary        string     `json:"summary"`
	Layers         []TechCard `json:"layers"`
	PipelineSketch string     `json:"pipelineSketch"`
	ScaleNote      string     `json:"scaleNote"`
}

const pipelineSketch = `// Pseudo-code for Gemini RAG Pipeline logic

async function process_comment(comment_text, user_lang) {

    // 1. DPI Integration: Translate to English
    const translation = await bhashini.translate(comment_text, 'en');

    // 2. Vector Search (RAG)
    const vectors = await pinecone.embed(translation);
    const context = await retrieve_policy_docs(vectors);

    // 3. Reasoning with Gemini 3 Pro
    const response = await googleGenAI.generateContent({
        model: 'gemini-3-pro-preview',
        prompt: translation,
        context: context,
        systemInstruction: "Act as a helpful government liaison."
    });

    // 4. Native Response
    const final_output = await bhashini.translate(response.text, user_lang);

    return final_output;
}`

// SystemArchitecture returns the architecture overview.
func SystemArchitecture() Architecture {
	return Architecture{
		Title:   "System Architecture",
		Summary: "High-level overview of the AI Connect stack",
		Layers: []TechCard{
			{Title: "Ingestion Layer", Description: "Webhooks (X/YouTube APIs), Citizen App inputs.", Tags: []string{"React", "Webhooks", "REST"}},
			{Title: "DPI Layer", Description: "Bhashini for translation & e-KYC for authentication.", Tags: []string{"Bhashini", "Aadhaar", "e-KYC"}},
			{Title: "Intelligence", Description: "Gemini 3 Pro for reasoning + Pinecone Vector DB for RAG.", Tags: []string{"Gemini 3 Pro", "Pinecone", "LangChain"}},
			{Title: "Safety & Guardrails", Description: "NeMo Guardrails & proprietary filters for PII redaction.", Tags: []string{"NeMo", "OAuth 2.0", "AES-256"}},
		},
		PipelineSketch: pipelineSketch,
		ScaleNote:      "This architecture is designed for scale, capable of handling 10M+ concurrent citizen requests using serverless edge functions.",
	}
}
