package pipeline

// TranscribePrompt is sent with the uploaded media when a script run needs a
// transcript and the cache has none. Keep it short; the model returns plain
// text which is cached verbatim.
const TranscribePrompt = "Transcribe this video."

// ScriptAnalysisPrompt captures the instructions sent alongside a transcript
// when producing a script record. Update this text centrally so every call
// stays in sync with the script schema's thirteen columns.
const ScriptAnalysisPrompt = `**URGENT: STRICTLY ADHERE TO CSV FORMATTING. EACH ROW MUST HAVE EXACTLY 13 FIELDS.**

Analyze the provided video transcript for script effectiveness and compelling storytelling elements. Your goal is to understand what makes this script work and identify patterns that create engaging content.

Generate a single line of CSV output with the following fields, in this exact order, separated by commas:

**Fields (13 total, STRICT ORDER):**
1. **Video_Filename:** The filename of the video being analyzed.
2. **Overall_Message:** The core message or main takeaway of the script. What is the creator trying to communicate? **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
3. **Script_Purpose:** Why was this script created? What goal is it trying to achieve (educate, entertain, inspire, sell, etc.)? **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
4. **Tonality:** Describe the overall tone and voice of the script (conversational, authoritative, humorous, dramatic, etc.). **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
5. **Emotional_Arc:** Map the emotional journey of the script from beginning to end. How does it make the viewer feel and how do those emotions change? **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
6. **Hook_Effectiveness:** Analyze the opening hook. What technique is used and how effective is it at grabbing attention? **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
7. **Narrative_Flow:** Examine how ideas connect and transition. Is the logical progression clear and compelling? **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
8. **Transition_Quality:** Analyze how the script moves from one idea to the next. What techniques are used to maintain flow? **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
9. **Call_to_Action:** Identify and evaluate any calls to action. How clear and compelling are they? **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
10. **Recurring_Patterns:** Identify patterns, techniques, or structures that appear throughout the script (repetition, questions, storytelling devices, etc.). **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
11. **Line_by_Line_Analysis:** Provide detailed analysis of key lines explaining WHY each important line was said and its strategic purpose. **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
12. **Effectiveness_Score:** A numerical rating from 1 to 10 for overall script effectiveness.
13. **Improvement_Suggestions:** Specific suggestions for how this script could be improved or what elements could be strengthened. **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**

**STRICT FORMATTING RULES:**
* **YOU MUST USE STANDARD STRAIGHT DOUBLE QUOTES (") FOR QUOTING. NO CURLY QUOTES.**
* When a quoted field *itself* contains a literal double quote ("), **you MUST escape it by doubling it ("").**
* DO NOT include any header row in your output. Just provide the data row.
* Provide the output directly as a CSV line.

**Example of a CORRECTLY QUOTED field (note the straight quotes and doubled internal quote):**
"The creator said, ""This changed my life!"" which creates emotional resonance."

**Focus Areas for Analysis:**
- What makes the opening compelling?
- How does the script maintain engagement throughout?
- What emotional triggers are used?
- How does the structure support the message?
- What storytelling techniques create connection?
- How does word choice impact effectiveness?
- What patterns could be replicated in other scripts?`

// SegmentAnalysisPrompt captures the instructions sent with the uploaded
// media when producing segment records. The filename column is injected
// locally, so the model is asked for nine fields per row, matching the
// segment schema's line arity.
const SegmentAnalysisPrompt = `**URGENT: STRICTLY ADHERE TO CSV FORMATTING. EACH ROW MUST HAVE EXACTLY 9 FIELDS.**

Analyze the provided video by breaking it into its distinct segments. A new segment starts whenever the shot, location, speaker, or visual subject changes. Your goal is to understand how each segment contributes to the video's overall effectiveness.

Generate one line of CSV output PER SEGMENT with the following fields, in this exact order, separated by commas:

**Fields (9 total, STRICT ORDER):**
1. **Segment_ID:** Sequential number of the segment, starting at 1.
2. **Start_Time:** Timestamp where the segment begins, as MM:SS.
3. **End_Time:** Timestamp where the segment ends, as MM:SS.
4. **Shot_Type:** EXACTLY ONE OF: Talking Head, B-roll, Hybrid. Use Talking Head when a person speaks to camera, B-roll for footage without an on-camera speaker, Hybrid when both appear.
5. **Spoken_Text:** The words spoken during the segment, transcribed verbatim. Use an empty field if nothing is spoken. **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
6. **Visual_Description:** What is visible on screen during the segment. **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
7. **Inferred_Purpose:** Why this segment exists. What is it doing for the viewer (hooking attention, building credibility, demonstrating, transitioning, calling to action, etc.)? **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**
8. **Effectiveness_Rating:** A numerical rating from 1 to 5 for how well the segment serves its purpose.
9. **Effectiveness_Justification:** A short explanation of the rating. **CRITICAL: If this contains commas, double quotes, or newlines, ENCLOSE THE ENTIRE FIELD IN STANDARD STRAIGHT DOUBLE QUOTES (").**

**STRICT FORMATTING RULES:**
* **YOU MUST USE STANDARD STRAIGHT DOUBLE QUOTES (") FOR QUOTING. NO CURLY QUOTES.**
* When a quoted field *itself* contains a literal double quote ("), **you MUST escape it by doubling it ("").**
* DO NOT include any header row in your output. Just provide the data rows.
* DO NOT wrap the output in a code block. Provide the CSV lines directly, one segment per line.

**Example of a CORRECTLY QUOTED field (note the straight quotes and doubled internal quote):**
"She says, ""stop scrolling"", directly to camera."`
